package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"ca-arena/internal/arena"
	"ca-arena/internal/sweep"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	steps := flag.Int("steps", 300, "generations to simulate per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 8, "seeds per setting")
	first := flag.Int64("first-seed", 1, "first seed")
	preset := flag.String("sim", "arena", "preset providing the base configuration")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable), e.g. -set species=virus,cancer")
	flag.Parse()

	base, ok := arena.Preset(*preset)
	if !ok {
		log.Fatalf("unknown preset %q", *preset)
	}
	base.Width, base.Height = 128, 128
	kv := map[string]string{}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("invalid override %q, want key=value", o)
		}
		kv[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	base.Apply(kv)
	if err := base.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jobs := sweep.Jobs(sweep.AllSettings(), *first, *seeds)
	slog.Info("sweep starting", "runs", len(jobs), "workers", *workers, "steps", *steps,
		"species", strings.Join(base.Species, ","), "size", fmt.Sprintf("%dx%d", base.Width, base.Height))

	start := time.Now()
	results, err := sweep.Run(ctx, base, jobs, *steps, *workers)
	if err != nil {
		slog.Warn("sweep interrupted", "completed", len(results), "err", err)
	}
	for _, r := range results {
		if r.Err != nil {
			slog.Error("run failed", "seed", r.Job.Seed, "setting", r.Job.Setting.String(), "err", r.Err)
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "interactions\tbattle\torder\truns\tsurvivors\tdominant share\tconversions\ttop winner")
	for _, row := range sweep.Aggregate(results) {
		winner, wins := row.TopWinner()
		fmt.Fprintf(tw, "%t\t%t\t%s\t%d\t%.2f ± %.2f\t%.1f%%\t%.0f\t%s (%d)\n",
			row.Setting.Interactions, row.Setting.Battle, row.Setting.Order, row.Runs,
			row.SurvivorsMean, row.SurvivorsStd, row.ShareMean*100, row.ConversionMean, winner, wins)
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}
	slog.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))
}
