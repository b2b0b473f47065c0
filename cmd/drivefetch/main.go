package main

import (
	"context"
	"os"

	"github.com/tealrobotco/drivefetch/internal/app"
	"github.com/tealrobotco/drivefetch/internal/config"
	"github.com/tealrobotco/drivefetch/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewText(os.Stderr, cfg.Verbose)

	a := app.New(cfg, log)
	os.Exit(a.Run(context.Background()))
}
