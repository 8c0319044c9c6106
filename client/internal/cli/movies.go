package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mathewgeejo/cinemabase/shared/catalog"
	"github.com/mathewgeejo/cinemabase/shared/domain"
)

type moviesFlags struct {
	search    string
	genre     string
	minRating float64
	page      int
}

func newMoviesCmd(app *App) *cobra.Command {
	flags := &moviesFlags{}
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse the catalog",
		Long: `Fetch the catalog and narrow it locally by title, genre and minimum rating.
Results are shown one page at a time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if math.IsNaN(flags.minRating) || flags.minRating < 0 || flags.minRating > 10 {
				return fmt.Errorf("--min-rating must be between 0 and 10")
			}
			movies, err := app.client.Movies(cmd.Context())
			if err != nil {
				return err
			}

			filtered := catalog.Apply(movies, catalog.Query{
				Term:      flags.search,
				Genre:     flags.genre,
				MinRating: flags.minRating,
			})
			page := catalog.Paginate(filtered, flags.page, app.PageSize)

			if page.Total == 0 {
				cmd.Println("No movies match")
				return nil
			}
			writeMovies(cmd.OutOrStdout(), page.Movies)
			cmd.Printf("Page %d/%d, %d movies\n", page.Number, page.TotalPages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive title substring")
	cmd.Flags().StringVar(&flags.genre, "genre", catalog.AllGenres, "exact genre name")
	cmd.Flags().Float64Var(&flags.minRating, "min-rating", 0, "minimum rating, 0 to 10")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number")
	return cmd
}

func newGenresCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List genre names usable with movies --genre",
		RunE: func(cmd *cobra.Command, _ []string) error {
			genres, err := app.client.Genres(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range genres {
				cmd.Println(g.Name)
			}
			return nil
		},
	}
}

func writeMovies(w io.Writer, movies []domain.Movie) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tGENRES\tRATE\tLENGTH")
	for _, m := range movies {
		names := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%dm\n", m.Id, m.Title, strings.Join(names, ", "), m.Rate, m.LengthMinutes)
	}
	tw.Flush()
}
