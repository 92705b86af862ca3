package analysis

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the analysis of one input table. It is read-only once returned.
type Summary struct {
	SourceName  string
	RowCount    int
	ColumnCount int
	ColumnNames []string
	// Stats is keyed by numeric column name; NumericColumns lists those keys in column order.
	Stats          map[string]ColumnStats
	NumericColumns []string
	// Table is the dataset the summary was computed from. Downstream stages read it, never modify it.
	Table *Table
}

// ColumnStats holds unrounded descriptive statistics of a numeric column.
type ColumnStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// AnalyzeCSV loads a CSV file and summarizes it.
func AnalyzeCSV(path string, opt Options) (*Summary, error) {
	t, err := Load(path, opt)
	if err != nil {
		return nil, err
	}
	return Analyze(t), nil
}

// Analyze computes the summary of an already loaded table.
func Analyze(t *Table) *Summary {
	s := &Summary{
		SourceName:  t.Name,
		RowCount:    t.Rows,
		ColumnCount: len(t.Columns),
		ColumnNames: t.Names(),
		Stats:       make(map[string]ColumnStats),
		Table:       t,
	}
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Kind != KindNumeric {
			continue
		}
		vals := c.Numbers()
		if len(vals) == 0 {
			continue
		}
		s.Stats[c.Name] = describe(vals)
		s.NumericColumns = append(s.NumericColumns, c.Name)
	}
	return s
}

func describe(vals []float64) ColumnStats {
	return ColumnStats{
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
		Mean:   stat.Mean(vals, nil),
		Median: median(vals),
	}
}

// median averages the two middle values for even counts; stat.Quantile has no
// method that does.
func median(vals []float64) float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// Text renders a compact plain-text summary.
func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.SourceName != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.SourceName))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.RowCount))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", s.ColumnCount))

	b.WriteString("[SCHEMA]\n")
	if s.Table != nil {
		for _, c := range s.Table.Columns {
			b.WriteString(fmt.Sprintf("- %s: %s", c.Name, c.Kind))
			missing := len(c.Cells) - len(c.Present())
			if missing > 0 {
				b.WriteString(fmt.Sprintf(" (missing %d)", missing))
			}
			if st, ok := s.Stats[c.Name]; ok {
				b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, median %.4g", st.Min, st.Max, st.Mean, st.Median))
			}
			b.WriteString("\n")
		}
	} else {
		for _, name := range s.ColumnNames {
			b.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}
	return b.String()
}
