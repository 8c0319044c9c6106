package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
)

type credentialsFlags struct {
	email    string
	password string
	role     string
}

func newSignupCmd(app *App) *cobra.Command {
	flags := &credentialsFlags{}
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password(flags.password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			session, err := app.client.Signup(cmd.Context(), flags.email, pw, flags.role)
			if err != nil {
				return err
			}
			return signedIn(cmd, app, session)
		},
	}
	cmd.Flags().StringVar(&flags.email, "email", "", "account email")
	cmd.Flags().StringVar(&flags.password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&flags.role, "role", "", "user or admin (default user)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newSigninCmd(app *App) *cobra.Command {
	flags := &credentialsFlags{}
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password(flags.password, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			session, err := app.client.Signin(cmd.Context(), flags.email, pw)
			if err != nil {
				return err
			}
			return signedIn(cmd, app, session)
		},
	}
	cmd.Flags().StringVar(&flags.email, "email", "", "account email")
	cmd.Flags().StringVar(&flags.password, "password", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func signedIn(cmd *cobra.Command, app *App, session domain.Session) error {
	if err := app.Sessions.Save(session); err != nil {
		return err
	}
	cmd.Printf("Signed in as %s (%s), session valid until %s\n",
		session.Principal.Id, session.Principal.Role, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func newSignoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session()
			if err != nil {
				return err
			}
			// a token the server already rejects is as good as revoked
			if err := app.client.Signout(cmd.Context(), session.Token); err != nil && internal_errors.StatusCode(err) != http.StatusUnauthorized {
				return err
			}
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			cmd.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session()
			if err != nil {
				return err
			}
			me, err := app.client.Me(cmd.Context(), session.Token)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%s)\n", me.Email, me.Role)
			if me.Name != "" {
				cmd.Printf("Name: %s\n", me.Name)
			}
			return nil
		},
	}
}
