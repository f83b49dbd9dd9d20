// Package census counts live cells per rule and turns the counts into time
// series, summary statistics and charts.
package census

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Source is anything that can enumerate its owned cells.
type Source interface {
	EachActive(fn func(row, col int, rule string, state uint8))
}

// Counts maps a rule name to its number of cells in a non-zero state.
type Counts map[string]int

// Take tallies src. Rules whose cells are all in state 0 still appear with a
// zero count so that dormant species stay visible.
func Take(src Source) Counts {
	c := Counts{}
	src.EachActive(func(_, _ int, rule string, state uint8) {
		if state > 0 {
			c[rule]++
		} else if _, ok := c[rule]; !ok {
			c[rule] = 0
		}
	})
	return c
}

// Total sums every rule's count.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Names returns the rules in c, largest population first, ties by name.
func (c Counts) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c[names[i]] != c[names[j]] {
			return c[names[i]] > c[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Series accumulates one Counts per recorded generation.
type Series struct {
	gens   []float64
	byRule map[string][]float64
}

// NewSeries returns an empty series.
func NewSeries() *Series { return &Series{byRule: map[string][]float64{}} }

// Record appends a sample. Rules first seen now are back-filled with zeros;
// rules missing from c record zero.
func (s *Series) Record(gen uint64, c Counts) {
	n := len(s.gens)
	for name := range c {
		if _, ok := s.byRule[name]; !ok {
			s.byRule[name] = make([]float64, n)
		}
	}
	s.gens = append(s.gens, float64(gen))
	for name, vals := range s.byRule {
		s.byRule[name] = append(vals, float64(c[name]))
	}
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.gens) }

// Generations returns the generation of each sample.
func (s *Series) Generations() []float64 { return s.gens }

// Rules lists every rule seen, sorted by name.
func (s *Series) Rules() []string {
	names := make([]string, 0, len(s.byRule))
	for name := range s.byRule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the population of rule over time, or nil if never seen.
func (s *Series) Values(rule string) []float64 { return s.byRule[rule] }

// Summary describes one rule's population over a run.
type Summary struct {
	Rule   string
	Mean   float64
	StdDev float64
	Peak   float64
	Final  float64
	// Share is the rule's fraction of the final live population.
	Share float64
	// Period is the dominant oscillation period in samples, 0 if none.
	Period int
}

// Summarize computes per-rule statistics, largest final population first.
func Summarize(s *Series) []Summary {
	if s.Len() == 0 {
		return nil
	}
	total := 0.0
	for _, vals := range s.byRule {
		total += vals[len(vals)-1]
	}
	out := make([]Summary, 0, len(s.byRule))
	for _, name := range s.Rules() {
		vals := s.byRule[name]
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) < 2 {
			std = 0
		}
		sum := Summary{
			Rule:   name,
			Mean:   mean,
			StdDev: std,
			Peak:   floats.Max(vals),
			Final:  vals[len(vals)-1],
			Period: DominantPeriod(vals),
		}
		if total > 0 {
			sum.Share = sum.Final / total
		}
		out = append(out, sum)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Final > out[j].Final })
	return out
}

// DominantPeriod returns the period, in samples, of the strongest
// non-constant frequency component of vals. Flat or very short series
// return 0.
func DominantPeriod(vals []float64) int {
	n := len(vals)
	if n < 4 {
		return 0
	}
	mean := stat.Mean(vals, nil)
	centred := make([]float64, n)
	for i, v := range vals {
		centred[i] = v - mean
	}
	if floats.Norm(centred, 2) < 1e-9 {
		return 0
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centred)
	best, power := 0, 0.0
	for k := 1; k < len(coeffs); k++ {
		c := coeffs[k]
		if p := real(c)*real(c) + imag(c)*imag(c); p > power {
			best, power = k, p
		}
	}
	if best == 0 {
		return 0
	}
	return int(math.Round(1 / fft.Freq(best)))
}

// WriteTable prints summaries as an aligned text table.
func WriteTable(w io.Writer, sums []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "rule\tfinal\tshare\tmean\tstddev\tpeak\tperiod")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f%%\t%.1f\t%.1f\t%.0f\t%d\n",
			s.Rule, s.Final, s.Share*100, s.Mean, s.StdDev, s.Peak, s.Period)
	}
	return tw.Flush()
}

// Stepper is a source that can advance itself.
type Stepper interface {
	Source
	Step()
	Generation() uint64
}

// Track records s, runs gens generations and records every n-th one plus
// the last. n below 1 records every generation.
func Track(s Stepper, gens, every int) *Series {
	if every < 1 {
		every = 1
	}
	series := NewSeries()
	series.Record(s.Generation(), Take(s))
	for i := 1; i <= gens; i++ {
		s.Step()
		if i%every == 0 || i == gens {
			series.Record(s.Generation(), Take(s))
		}
	}
	return series
}
