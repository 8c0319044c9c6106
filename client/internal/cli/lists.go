package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

func newListsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show your wishlist, bookmarks, ongoing and completed movies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session()
			if err != nil {
				return err
			}
			lib, err := app.client.Lists(cmd.Context(), session.Token)
			if err != nil {
				return err
			}
			for _, kind := range domain.ListKinds {
				movies := lib.List(kind)
				cmd.Printf("%s (%d)\n", kind, len(movies))
				for _, m := range movies {
					cmd.Printf("  %s  %s\n", m.Id, m.Title)
				}
			}
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <movie-id>",
		Short: "Put a movie on a list",
		Long: `Put a movie on one of: wishlist, bookmarks, ongoing, completed.
Adding to ongoing or completed moves the movie off the other one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, kind, movieId, err := listArgs(app, args)
			if err != nil {
				return err
			}
			if err := app.client.AddToList(cmd.Context(), session.Token, kind, movieId); err != nil {
				return err
			}
			cmd.Printf("Added to %s\n", kind)
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list> <movie-id>",
		Short: "Take a movie off a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, kind, movieId, err := listArgs(app, args)
			if err != nil {
				return err
			}
			if err := app.client.RemoveFromList(cmd.Context(), session.Token, kind, movieId); err != nil {
				return err
			}
			cmd.Printf("Removed from %s\n", kind)
			return nil
		},
	}
}

func listArgs(app *App, args []string) (domain.Session, domain.ListKind, domain.MovieId, error) {
	kind, err := domain.ParseListKind(args[0])
	if err != nil {
		return domain.Session{}, "", uuid.Nil, fmt.Errorf("%w, expected one of %v", err, domain.ListKinds)
	}
	movieId, err := uuid.Parse(args[1])
	if err != nil {
		return domain.Session{}, "", uuid.Nil, fmt.Errorf("invalid movie id %q", args[1])
	}
	session, err := app.session()
	if err != nil {
		return domain.Session{}, "", uuid.Nil, err
	}
	return session, kind, movieId, nil
}
