package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"ca-arena/internal/app"
	"ca-arena/internal/arena"
	"ca-arena/internal/core"
	"ca-arena/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	preset := flag.String("sim", "arena", "preset to run")
	list := flag.Bool("list", false, "list presets and exit")
	values := arena.Bind(flag.CommandLine)
	flag.Parse()

	if *list {
		for _, name := range core.SimNames() {
			fmt.Println(name)
		}
		return
	}

	// Logging to stderr would tear the screen; only warnings are kept.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	cfg := values()
	w, h := screen.Size()
	cols, rows := term.FitSize(w, h)
	if _, ok := cfg["w"]; !ok {
		cfg["w"] = strconv.Itoa(cols)
	}
	if _, ok := cfg["h"]; !ok {
		cfg["h"] = strconv.Itoa(rows)
	}

	a, err := arena.Build(*preset, cfg)
	if err != nil {
		screen.Fini()
		log.Fatalf("build %s: %v", *preset, err)
	}
	a.Reset(a.Config().Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := term.New(screen, app.NewController(a, slog.Default()))
	err = v.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
