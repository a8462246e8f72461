// Command flockdemo runs the flock locally in a window, steering around the mouse cursor.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/config"
	"github.com/lao-tseu-is-alive/go-flock-arrows/internal/logging"
	"github.com/lao-tseu-is-alive/go-flock-arrows/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-flock-arrows/pkg/simulation"
)

func main() {
	configPath := flag.String("config", "", "path to a .json or .toml config file (defaults when empty)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("flockdemo: %v", err)
		}
		cfg = loaded
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	world := flocking.NewReferenceWorld(cfg.Bounds(), cfg.Parameters)
	game := simulation.NewGame(world, logger)

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Flocking Arrows")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
