package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

// NewRootCmd creates the root command for the cinemabase CLI.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cinemabase",
		Short: "Browse the movie catalog and manage your lists",
		Long: `cinemabase talks to a cinemabase API server. Sign in once, the session
is kept in your user config directory until it expires or you sign out.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.client = app.NewClient(app.baseURL)
		},
	}

	cmd.SetOut(os.Stdout)

	apiURL := os.Getenv("CINEMABASE_API")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	cmd.PersistentFlags().StringVar(&app.baseURL, "api", apiURL, "API base URL (env CINEMABASE_API)")

	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newSigninCmd(app))
	cmd.AddCommand(newSignoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newMoviesCmd(app))
	cmd.AddCommand(newGenresCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))

	return cmd
}
