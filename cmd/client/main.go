package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/atelieperto/atelieperto/internal/client/cli"
	"github.com/atelieperto/atelieperto/internal/client/config"
	"github.com/atelieperto/atelieperto/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
