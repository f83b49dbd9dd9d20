//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"

	"ca-arena/internal/app"
	"ca-arena/internal/arena"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	preset := flag.String("sim", "arena", "preset to run")
	scale := flag.Int("scale", 0, "pixel scale multiplier (defaults to -cell)")
	verbose := flag.Bool("v", false, "debug logging")
	values := arena.Bind(flag.CommandLine)
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	a, err := arena.Build(*preset, values())
	if err != nil {
		log.Fatalf("build %s: %v", *preset, err)
	}
	cfg := a.Config()
	a.Reset(cfg.Seed)

	s := *scale
	if s <= 0 {
		s = cfg.CellSize
	}
	game := app.New(app.NewController(a, slog.Default()), s)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("ca-arena: " + a.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
