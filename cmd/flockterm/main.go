// Command flockterm watches a running flockserver from a terminal.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/logging"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/protocol"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/termview"
	golog "github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	addr := flag.String("server", "localhost:3000", "flockserver address (host:port or URL)")
	codecName := flag.String("codec", protocol.DefaultCodec, "snapshot codec: json, msgpack or protobuf")
	logFile := flag.String("log", "", "write logs to this file (discarded when empty)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	codec, err := protocol.CodecByName(*codecName)
	if err != nil {
		log.Fatalf("flockterm: %v (known: %v)", err, protocol.CodecNames())
	}
	endpoint, err := termview.Endpoint(*addr, codec)
	if err != nil {
		log.Fatalf("flockterm: %v", err)
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	var logger golog.Logger = golog.DiscardLogger
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("flockterm: open log: %v", err)
		}
		defer f.Close()
		logger = logging.New(*logLevel, f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("flockterm: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("flockterm: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := termview.NewClient(endpoint, codec, logger)
	viewer := termview.NewViewer(screen, client, *addr, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.Run(ctx) })
	g.Go(func() error {
		// Quitting the viewer stops the client too.
		defer stop()
		return viewer.Run(ctx)
	})
	err = g.Wait()
	screen.Fini()
	if err != nil {
		log.Fatalf("flockterm: %v", err)
	}
}
