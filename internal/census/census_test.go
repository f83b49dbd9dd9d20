package census

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

type cells []struct {
	rule  string
	state uint8
}

func (c cells) EachActive(fn func(row, col int, rule string, state uint8)) {
	for i, cell := range c {
		fn(0, i, cell.rule, cell.state)
	}
}

func TestTakeCountsLiveCells(t *testing.T) {
	src := cells{{"life", 1}, {"life", 0}, {"life", 2}, {"virus", 0}, {"sand", 1}}
	c := Take(src)
	if c["life"] != 2 || c["sand"] != 1 {
		t.Fatalf("counts = %v", c)
	}
	if v, ok := c["virus"]; !ok || v != 0 {
		t.Fatalf("dormant rule should be listed with zero, got %v", c)
	}
	if c.Total() != 3 {
		t.Fatalf("Total = %d, want 3", c.Total())
	}
	names := c.Names()
	if names[0] != "life" || names[len(names)-1] != "virus" {
		t.Fatalf("Names = %v", names)
	}
}

func TestSeriesBackfillsLateRules(t *testing.T) {
	s := NewSeries()
	s.Record(0, Counts{"a": 4})
	s.Record(1, Counts{"a": 5, "b": 2})
	s.Record(2, Counts{"b": 3})
	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
	want := map[string][]float64{"a": {4, 5, 0}, "b": {0, 2, 3}}
	for name, vals := range want {
		got := s.Values(name)
		for i := range vals {
			if got[i] != vals[i] {
				t.Fatalf("%s = %v, want %v", name, got, vals)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	s := NewSeries()
	s.Record(0, Counts{"a": 2, "b": 8})
	s.Record(1, Counts{"a": 4, "b": 6})
	s.Record(2, Counts{"a": 6, "b": 2})
	sums := Summarize(s)
	if len(sums) != 2 || sums[0].Rule != "a" {
		t.Fatalf("summaries = %+v", sums)
	}
	a := sums[0]
	if a.Mean != 4 || a.Peak != 6 || a.Final != 6 {
		t.Fatalf("a = %+v", a)
	}
	if math.Abs(a.StdDev-2) > 1e-9 {
		t.Fatalf("a stddev = %v, want 2", a.StdDev)
	}
	if math.Abs(a.Share-0.75) > 1e-9 {
		t.Fatalf("a share = %v, want 0.75", a.Share)
	}
}

func TestDominantPeriod(t *testing.T) {
	vals := make([]float64, 64)
	for i := range vals {
		vals[i] = 100 + 10*math.Sin(2*math.Pi*float64(i)/8)
	}
	if p := DominantPeriod(vals); p != 8 {
		t.Fatalf("period = %d, want 8", p)
	}
	flat := []float64{3, 3, 3, 3, 3, 3}
	if p := DominantPeriod(flat); p != 0 {
		t.Fatalf("flat period = %d, want 0", p)
	}
	blinkerish := []float64{3, 5, 3, 5, 3, 5, 3, 5}
	if p := DominantPeriod(blinkerish); p != 2 {
		t.Fatalf("alternating period = %d, want 2", p)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []Summary{{Rule: "life", Final: 10, Share: 0.5, Mean: 8, Peak: 12, Period: 2}})
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "rule") || !strings.Contains(out, "life") || !strings.Contains(out, "50.0%") {
		t.Fatalf("table = %q", out)
	}
}

func TestRenderChart(t *testing.T) {
	s := NewSeries()
	if err := RenderChart(&bytes.Buffer{}, s, ChartOptions{}); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
	for g := 0; g < 10; g++ {
		s.Record(uint64(g), Counts{"life": g * 3, "virus": 30 - g})
	}
	var buf bytes.Buffer
	if err := RenderChart(&buf, s, ChartOptions{Width: 320, Height: 200, Title: "test"}); err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG")
	}
}

type blinker struct {
	gen uint64
}

func (b *blinker) Step()              { b.gen++ }
func (b *blinker) Generation() uint64 { return b.gen }

func (b *blinker) EachActive(fn func(row, col int, rule string, state uint8)) {
	n := 3
	if b.gen%2 == 1 {
		n = 5
	}
	for i := 0; i < n; i++ {
		fn(0, i, "life", 1)
	}
}

func TestTrackSamplesAndKeepsLast(t *testing.T) {
	s := Track(&blinker{}, 7, 3)
	gens := s.Generations()
	want := []float64{0, 3, 6, 7}
	if len(gens) != len(want) {
		t.Fatalf("generations = %v, want %v", gens, want)
	}
	for i := range want {
		if gens[i] != want[i] {
			t.Fatalf("generations = %v, want %v", gens, want)
		}
	}
	full := Track(&blinker{}, 16, 0)
	if p := DominantPeriod(full.Values("life")); p != 2 {
		t.Fatalf("blinker period = %d, want 2", p)
	}
}
