// Package sweep runs many independent arenas in parallel to compare
// colonization settings across seeds.
package sweep

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ca-arena/internal/arena"
	"ca-arena/internal/census"

	"gonum.org/v1/gonum/stat"
)

// Setting is one combination of the per-step toggles.
type Setting struct {
	Interactions bool
	Battle       bool
	Order        arena.WriteOrder
}

func (s Setting) String() string {
	return fmt.Sprintf("interactions=%t battle=%t order=%s", s.Interactions, s.Battle, s.Order)
}

// AllSettings enumerates every toggle combination.
func AllSettings() []Setting {
	var out []Setting
	for _, inter := range []bool{false, true} {
		for _, battle := range []bool{false, true} {
			for _, order := range []arena.WriteOrder{arena.OrderDeferred, arena.OrderScan} {
				out = append(out, Setting{Interactions: inter, Battle: battle, Order: order})
			}
		}
	}
	return out
}

// Job is one arena run.
type Job struct {
	Setting Setting
	Seed    int64
}

// Jobs crosses settings with seeds first..first+n-1.
func Jobs(settings []Setting, first int64, n int) []Job {
	jobs := make([]Job, 0, len(settings)*n)
	for _, s := range settings {
		for i := 0; i < n; i++ {
			jobs = append(jobs, Job{Setting: s, Seed: first + int64(i)})
		}
	}
	return jobs
}

// Result is the outcome of one job.
type Result struct {
	Job         Job
	Final       census.Counts
	Survivors   int
	Dominant    string
	Share       float64
	Conversions int
	Err         error
}

// RunOne builds an arena from base, applies the job and steps it.
func RunOne(base arena.Config, job Job, steps int) Result {
	cfg := base
	cfg.Seed = job.Seed
	cfg.Interactions = job.Setting.Interactions
	cfg.Battle = job.Setting.Battle
	cfg.Order = job.Setting.Order
	res := Result{Job: job}
	a, err := arena.New(cfg, nil)
	if err != nil {
		res.Err = err
		return res
	}
	a.Reset(job.Seed)
	for i := 0; i < steps; i++ {
		a.Step()
		res.Conversions += a.LastStats().Conversions
	}
	res.Final = census.Take(a)
	total := res.Final.Total()
	for _, name := range res.Final.Names() {
		if res.Final[name] > 0 {
			res.Survivors++
		}
	}
	if names := res.Final.Names(); len(names) > 0 && total > 0 {
		res.Dominant = names[0]
		res.Share = float64(res.Final[names[0]]) / float64(total)
	}
	return res
}

// Run executes jobs on a pool of workers. Results come back in job order.
// Cancelling ctx stops handing out new jobs; finished results are kept.
func Run(ctx context.Context, base arena.Config, jobs []Job, steps, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	type indexed struct {
		i   int
		res Result
	}
	in := make(chan int)
	out := make(chan indexed)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range in {
				out <- indexed{i: i, res: RunOne(base, jobs[i], steps)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	go func() {
		defer close(in)
		for i := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case in <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, len(jobs))
	done := make([]bool, len(jobs))
	for r := range out {
		results[r.i] = r.res
		done[r.i] = true
	}
	if err := ctx.Err(); err != nil {
		kept := results[:0]
		for i, ok := range done {
			if ok {
				kept = append(kept, results[i])
			}
		}
		return kept, err
	}
	return results, nil
}

// Row aggregates every seed run under one setting.
type Row struct {
	Setting        Setting
	Runs           int
	Failed         int
	SurvivorsMean  float64
	SurvivorsStd   float64
	ShareMean      float64
	ConversionMean float64
	// Wins counts how often each rule ended up dominant.
	Wins map[string]int
}

// TopWinner returns the rule that was dominant most often.
func (r Row) TopWinner() (string, int) {
	best, n := "", 0
	for name, w := range r.Wins {
		if w > n || (w == n && name < best) {
			best, n = name, w
		}
	}
	return best, n
}

// Aggregate groups results by setting, in AllSettings order where possible.
func Aggregate(results []Result) []Row {
	type acc struct {
		survivors, share, conv []float64
		failed                 int
		wins                   map[string]int
	}
	groups := map[Setting]*acc{}
	var order []Setting
	for _, r := range results {
		g, ok := groups[r.Job.Setting]
		if !ok {
			g = &acc{wins: map[string]int{}}
			groups[r.Job.Setting] = g
			order = append(order, r.Job.Setting)
		}
		if r.Err != nil {
			g.failed++
			continue
		}
		g.survivors = append(g.survivors, float64(r.Survivors))
		g.share = append(g.share, r.Share)
		g.conv = append(g.conv, float64(r.Conversions))
		if r.Dominant != "" {
			g.wins[r.Dominant]++
		}
	}
	rank := map[Setting]int{}
	for i, s := range AllSettings() {
		rank[s] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return rank[order[i]] < rank[order[j]] })

	rows := make([]Row, 0, len(order))
	for _, s := range order {
		g := groups[s]
		row := Row{Setting: s, Runs: len(g.survivors) + g.failed, Failed: g.failed, Wins: g.wins}
		if len(g.survivors) > 0 {
			row.SurvivorsMean, row.SurvivorsStd = stat.MeanStdDev(g.survivors, nil)
			if len(g.survivors) < 2 {
				row.SurvivorsStd = 0
			}
			row.ShareMean = stat.Mean(g.share, nil)
			row.ConversionMean = stat.Mean(g.conv, nil)
		}
		rows = append(rows, row)
	}
	return rows
}
