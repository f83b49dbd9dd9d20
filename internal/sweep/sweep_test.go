package sweep

import (
	"context"
	"errors"
	"testing"

	"ca-arena/internal/arena"
)

func smallConfig() arena.Config {
	cfg := arena.DefaultConfig()
	cfg.Width, cfg.Height = 48, 48
	cfg.Species = []string{"gameoflife", "virus"}
	cfg.Patches = 1
	return cfg
}

func TestAllSettingsIsComplete(t *testing.T) {
	seen := map[Setting]bool{}
	for _, s := range AllSettings() {
		seen[s] = true
	}
	if len(seen) != 8 {
		t.Fatalf("%d distinct settings, want 8", len(seen))
	}
}

func TestJobsCrossSeeds(t *testing.T) {
	jobs := Jobs(AllSettings()[:2], 10, 3)
	if len(jobs) != 6 || jobs[0].Seed != 10 || jobs[2].Seed != 12 || jobs[3].Seed != 10 {
		t.Fatalf("jobs = %+v", jobs)
	}
}

func TestRunMatchesSerialExecution(t *testing.T) {
	base := smallConfig()
	jobs := Jobs([]Setting{{Interactions: true}, {Interactions: true, Battle: true}}, 1, 3)
	parallel, err := Run(context.Background(), base, jobs, 20, 4)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(parallel) != len(jobs) {
		t.Fatalf("%d results, want %d", len(parallel), len(jobs))
	}
	for i, job := range jobs {
		serial := RunOne(base, job, 20)
		got := parallel[i]
		if got.Job != job || got.Dominant != serial.Dominant || got.Conversions != serial.Conversions {
			t.Fatalf("job %d: parallel %+v differs from serial %+v", i, got, serial)
		}
	}
}

func TestRunOneReportsConfigErrors(t *testing.T) {
	base := smallConfig()
	base.Width = 0
	if res := RunOne(base, Job{Seed: 1}, 5); !errors.Is(res.Err, arena.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", res.Err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, smallConfig(), Jobs(AllSettings(), 1, 4), 5, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res) >= 32 {
		t.Fatalf("cancelled sweep ran every job")
	}
}

func TestAggregate(t *testing.T) {
	a := Setting{Interactions: true}
	b := Setting{}
	results := []Result{
		{Job: Job{Setting: a}, Survivors: 2, Share: 0.5, Dominant: "virus", Conversions: 10},
		{Job: Job{Setting: a}, Survivors: 4, Share: 0.7, Dominant: "virus", Conversions: 30},
		{Job: Job{Setting: a}, Err: errors.New("boom")},
		{Job: Job{Setting: b}, Survivors: 1, Share: 1, Dominant: "gameoflife"},
	}
	rows := Aggregate(results)
	if len(rows) != 2 || rows[0].Setting != b {
		t.Fatalf("rows = %+v", rows)
	}
	r := rows[1]
	if r.Runs != 3 || r.Failed != 1 || r.SurvivorsMean != 3 || r.ConversionMean != 20 {
		t.Fatalf("row = %+v", r)
	}
	if name, n := r.TopWinner(); name != "virus" || n != 2 {
		t.Fatalf("TopWinner = %s %d", name, n)
	}
}
