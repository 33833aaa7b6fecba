package lsystem

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Growth describes how a grammar's sequence grows over its generations.
type Growth struct {
	System  string
	Lengths []int
	// Ratios[i] is Lengths[i+1]/Lengths[i], or 0 when Lengths[i] is 0.
	Ratios    []float64
	Histogram map[Symbol]int
	Segments  int
}

// AnalyseGrowth expands the grammar for n generations, recording the length
// of each generation and the symbol distribution of the last one.
func (l *LSystem) AnalyseGrowth(n int) Growth {
	lengths, last := l.generations(n)
	g := Growth{
		System:    l.Name,
		Lengths:   lengths,
		Histogram: make(map[Symbol]int),
	}
	for i := 1; i < len(g.Lengths); i++ {
		ratio := 0.0
		if g.Lengths[i-1] > 0 {
			ratio = float64(g.Lengths[i]) / float64(g.Lengths[i-1])
		}
		g.Ratios = append(g.Ratios, ratio)
	}
	for _, s := range last {
		g.Histogram[s]++
		if l.Draw.Contains(s) {
			g.Segments++
		}
	}
	return g
}

// AvgGrowth is the mean generation-over-generation growth ratio.
func (g Growth) AvgGrowth() float64 {
	if len(g.Ratios) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range g.Ratios {
		sum += r
	}
	return sum / float64(len(g.Ratios))
}

// RenderChart writes an HTML page with the length per generation and the
// final symbol distribution.
func (g Growth) RenderChart(w io.Writer) error {
	title := "Growth"
	if g.System != "" {
		title += " of " + g.System
	}

	lengths := charts.NewBar()
	lengths.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    title,
		Subtitle: "Sequence length per generation (avg growth " + strconv.FormatFloat(g.AvgGrowth(), 'f', 4, 64) + ")",
	}))
	labels := make([]string, len(g.Lengths))
	items := make([]opts.BarData, len(g.Lengths))
	for i, n := range g.Lengths {
		labels[i] = strconv.Itoa(i)
		items[i] = opts.BarData{Value: n}
	}
	lengths.SetXAxis(labels).AddSeries("length", items)

	histogram := charts.NewBar()
	histogram.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Symbol distribution",
		Subtitle: strconv.Itoa(g.Segments) + " segments in the final generation",
	}))
	set := make(SymbolSet, len(g.Histogram))
	for s := range g.Histogram {
		set.Add(s)
	}
	symbols := set.AsSlice()
	symLabels := make([]string, len(symbols))
	counts := make([]opts.BarData, len(symbols))
	for i, s := range symbols {
		symLabels[i] = s.String()
		counts[i] = opts.BarData{Value: g.Histogram[s]}
	}
	histogram.SetXAxis(symLabels).AddSeries("count", counts)

	page := components.NewPage()
	page.AddCharts(lengths, histogram)
	return page.Render(w)
}

// RenderFunc serializes fitted segments for a canvas.
type RenderFunc func(w io.Writer, segments []Segment, c Canvas) error

// Handler serves a preview of l: the rendered drawing on "/" and its growth
// chart on "/growth".
func Handler(l *LSystem, c Canvas, render RenderFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fitted, _ := Fit(l.Trace().Segments, c)
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := render(w, fitted, c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/growth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := l.AnalyseGrowth(l.Iterations).RenderChart(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// Serve blocks serving Handler on addr.
func Serve(addr string, l *LSystem, c Canvas, render RenderFunc) error {
	if err := http.ListenAndServe(addr, Handler(l, c, render)); err != nil {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}
