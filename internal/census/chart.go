package census

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData is returned when a chart would have fewer than two samples.
var ErrNotEnoughData = errors.New("census: need at least two samples to chart")

// ChartOptions controls RenderChart.
type ChartOptions struct {
	Width, Height int
	Title         string
	// Rules restricts the chart to these rules; empty means all.
	Rules []string
	// Color picks a line colour per rule; nil uses the chart defaults.
	Color func(rule string) color.RGBA
}

// RenderChart draws population over generations as a PNG line chart.
func RenderChart(w io.Writer, s *Series, opts ChartOptions) error {
	if s.Len() < 2 {
		return ErrNotEnoughData
	}
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	names := opts.Rules
	if len(names) == 0 {
		names = s.Rules()
	}

	var series []chart.Series
	for _, name := range names {
		vals := s.Values(name)
		if vals == nil {
			continue
		}
		style := chart.Style{StrokeWidth: 2}
		if opts.Color != nil {
			c := opts.Color(name)
			style.StrokeColor = drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: s.Generations(),
			YValues: vals,
			Style:   style,
		})
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "live cells",
			Style: chart.Style{FontSize: 10},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
