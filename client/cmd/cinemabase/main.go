package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mathewgeejo/cinemabase/client/internal/apiclient"
	"github.com/mathewgeejo/cinemabase/client/internal/cli"
	"github.com/mathewgeejo/cinemabase/client/internal/session"
	"github.com/mathewgeejo/cinemabase/shared/config"
	"github.com/mathewgeejo/cinemabase/shared/logger"
)

func main() {
	logger.InitializeWithWriter(os.Stderr, os.Getenv("CINEMABASE_LOG_LEVEL"), false)

	path, err := session.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &cli.App{
		NewClient: func(baseURL string) cli.Client { return apiclient.New(baseURL) },
		Sessions:  session.NewStore(path),
		PageSize:  config.DefaultMoviePageSize,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
