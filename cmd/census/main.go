package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"ca-arena/internal/arena"
	"ca-arena/internal/census"
	"ca-arena/internal/core"
	"ca-arena/internal/render"
)

func main() {
	preset := flag.String("sim", "arena", "preset to run")
	gens := flag.Int("gens", 500, "generations to simulate")
	every := flag.Int("every", 1, "sample every n-th generation")
	out := flag.String("png", "", "write a population chart to this PNG file")
	width := flag.Int("chart-w", 1024, "chart width in pixels")
	height := flag.Int("chart-h", 400, "chart height in pixels")
	list := flag.Bool("list", false, "list presets and exit")
	values := arena.Bind(flag.CommandLine)
	flag.Parse()

	if *list {
		for _, name := range core.SimNames() {
			fmt.Println(name)
		}
		return
	}

	a, err := arena.Build(*preset, values())
	if err != nil {
		log.Fatalf("build %s: %v", *preset, err)
	}
	cfg := a.Config()
	a.Reset(cfg.Seed)

	series := census.Track(a, *gens, *every)
	sums := census.Summarize(series)
	if err := census.WriteTable(os.Stdout, sums); err != nil {
		log.Fatal(err)
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		err = census.RenderChart(f, series, census.ChartOptions{
			Width:  *width,
			Height: *height,
			Title:  a.Name(),
			Color:  render.Base,
		})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatalf("chart: %v", err)
		}
	}

	leader := ""
	if len(sums) > 0 {
		leader = sums[0].Rule
	}
	slog.Info("census complete", "sim", a.Name(), "generations", a.Generation(),
		"rules", len(sums), "leader", leader, "seed", cfg.Seed)
}
