package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cotrip/cotrip/internal/buildinfo"
	"github.com/cotrip/cotrip/internal/client/cli"
	"github.com/cotrip/cotrip/internal/client/config"
	"github.com/cotrip/cotrip/internal/filex"
	"github.com/cotrip/cotrip/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	if _, err := filex.EnsureParentDir(cfg.DBPath); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
