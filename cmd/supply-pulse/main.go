package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"supply-pulse/internal/app/api"
	"supply-pulse/internal/app/subscriber"
	"supply-pulse/internal/common/logger"
	"supply-pulse/internal/config"
	"supply-pulse/internal/seed"
)

func main() {
	mode := flag.String("mode", "", "dashboard-api | alert-subscriber | seed")
	port := flag.Int("port", 0, "dashboard-api: http port (overrides config)")
	configPath := flag.String("config", "", "path to config yaml (default: config.yaml, then deploy/config.example.yaml)")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *configPath
	if path == "" {
		found, err := config.FindConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "no config file found; pass --config")
			os.Exit(2)
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}

	switch *mode {
	case "dashboard-api":
		if *port == 0 {
			*port = cfg.HTTP.Port
		}
		lg.Info("service_started", map[string]any{"service": "dashboard-api", "port": *port})
		if err := api.Run(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "alert-subscriber":
		lg.Info("service_started", map[string]any{"service": "alert-subscriber"})
		if err := subscriber.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := seed.Run(ctx, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: dashboard-api | alert-subscriber | seed")
		os.Exit(2)
	}
}
