// Command flockserver runs the shared flock and serves it to websocket viewers.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/config"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/logging"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a .json or .toml config file (defaults when empty)")
	listen := flag.String("listen", "", "listen address, overrides the config file and FLOCK_LISTEN_ADDR")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("flockserver: %v", err)
		}
		cfg = loaded
	}
	ignored := cfg.ApplyEnv(os.Getenv)
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	for _, msg := range ignored {
		logger.Warnf("ignoring environment override: %s", msg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		log.Fatalf("flockserver: %v", err)
	}
}
