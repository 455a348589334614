package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/subosito/gotenv"

	"github.com/aissantos/finansix-web-sub000/pkg/config"
	"github.com/aissantos/finansix-web-sub000/pkg/server"
)

func main() {
	_ = gotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "finansix",
	})

	var (
		port    = flag.String("port", "", "Server port (overrides config)")
		cfgFile = flag.String("config", "", "Config file")
	)
	flag.Parse()

	cfg, err := config.Build(*cfgFile, nil)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	srv := server.New(cfg, logger)
	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
