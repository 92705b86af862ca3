package charts

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/KaramelBytes/csvreport-cli/internal/fsutil"
	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	HistogramFile = "histogram.png"
	PieChartFile  = "piechart.png"

	// dpi of the PNG canvas gonum/plot renders into.
	dpi = 96
)

// Options controls chart rendering.
type Options struct {
	// Bins is the number of histogram bins.
	Bins int
	// Width and Height are the image size in pixels for both charts.
	Width  int
	Height int
}

// DefaultOptions returns 10 bins at 800x400 pixels.
func DefaultOptions() Options {
	return Options{Bins: 10, Width: 800, Height: 400}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Bins <= 0 {
		o.Bins = d.Bins
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Build renders a histogram of the first numeric column and a pie chart of the
// first text-like column into dir, creating it if needed. It returns the paths
// written, histogram first.
func Build(t *analysis.Table, dir string, opt Options) ([]string, error) {
	opt = opt.withDefaults()
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, &RenderError{Path: dir, Err: fmt.Errorf("create chart dir: %w", err)}
	}
	var paths []string
	if col, ok := histogramColumn(t); ok {
		p := filepath.Join(dir, HistogramFile)
		wrote, err := writeHistogram(col, p, opt)
		if err != nil {
			return paths, &RenderError{Chart: "histogram", Path: p, Err: err}
		}
		if wrote {
			paths = append(paths, p)
		}
	}
	if col, ok := t.FirstOfKind(analysis.KindText); ok {
		p := filepath.Join(dir, PieChartFile)
		wrote, err := writePie(col, p, opt)
		if err != nil {
			return paths, &RenderError{Chart: "pie", Path: p, Err: err}
		}
		if wrote {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// histogramColumn returns the first numeric column holding at least one value.
// Columns whose cells are all missing are numeric but have nothing to bin.
func histogramColumn(t *analysis.Table) (*analysis.Column, bool) {
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Kind == analysis.KindNumeric && len(c.Numbers()) > 0 {
			return c, true
		}
	}
	return nil, false
}

func writeHistogram(col *analysis.Column, path string, opt Options) (bool, error) {
	var vals plotter.Values
	for _, v := range col.Numbers() {
		if !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return false, nil
	}
	p := plot.New()
	p.Title.Text = "Distribution of " + col.Name
	p.Y.Label.Text = "Frequency"
	h, err := plotter.NewHist(vals, opt.Bins)
	if err != nil {
		return false, fmt.Errorf("histogram: %w", err)
	}
	p.Add(h)

	w := vg.Length(opt.Width) * vg.Inch / dpi
	ht := vg.Length(opt.Height) * vg.Inch / dpi
	wt, err := p.WriterTo(w, ht, "png")
	if err != nil {
		return false, fmt.Errorf("png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return false, fmt.Errorf("encode png: %w", err)
	}
	if err := fsutil.SafeWriteFile(path, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

func writePie(col *analysis.Column, path string, opt Options) (bool, error) {
	counts := Frequencies(col.Present())
	if len(counts) == 0 {
		return false, nil
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{Value: float64(c.Count), Label: sliceLabel(c, total)}
	}
	pie := chart.PieChart{
		Title:  "Distribution of " + col.Name,
		Width:  opt.Width,
		Height: opt.Height,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return false, fmt.Errorf("pie chart: %w", err)
	}
	if err := fsutil.SafeWriteFile(path, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// sliceLabel names a pie slice with its share of total, one decimal place.
func sliceLabel(c ValueCount, total int) string {
	return fmt.Sprintf("%s (%.1f%%)", c.Value, float64(c.Count)*100/float64(total))
}

// ValueCount is the number of occurrences of one distinct cell value.
type ValueCount struct {
	Value string
	Count int
}

// Frequencies counts distinct values, most frequent first; ties keep first-appearance order.
func Frequencies(cells []string) []ValueCount {
	idx := map[string]int{}
	var out []ValueCount
	for _, v := range cells {
		if i, ok := idx[v]; ok {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, ValueCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
