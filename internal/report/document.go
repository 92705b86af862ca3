package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
)

// Title is the heading printed at the top of every report.
const Title = "Data Analysis Report"

// maxListedColumns is how many column names the Data Summary section lists.
const maxListedColumns = 5

// Style selects font and alignment for a text block.
type Style int

const (
	StyleTitle   Style = iota // centered, bold 16
	StyleHeading              // bold 14
	StyleLabel                // bold 12
	StyleBody                 // regular 12
)

// BlockKind distinguishes text lines, vertical space and embedded images.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockSpace
	BlockImage
)

// Block is one element of the laid-out report, in page order.
type Block struct {
	Kind  BlockKind
	Style Style
	Text  string
	// Space is the vertical gap in millimetres for BlockSpace.
	Space float64
	// Image is the file path for BlockImage.
	Image string
}

// Document is the fixed report template filled in for one summary.
type Document struct {
	Blocks []Block
}

func (d *Document) text(style Style, format string, args ...any) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockText, Style: style, Text: fmt.Sprintf(format, args...)})
}

func (d *Document) space(mm float64) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockSpace, Space: mm})
}

func (d *Document) image(path string) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockImage, Image: path})
}

// Compose lays out the title block, Data Summary, Statistical Analysis and,
// when charts is non-empty, Visualizations sections.
func Compose(s *analysis.Summary, charts []string, now time.Time) *Document {
	d := &Document{}
	d.text(StyleTitle, "%s", Title)
	d.text(StyleTitle, "File: %s", s.SourceName)
	d.text(StyleTitle, "Generated: %s", now.Format("2006-01-02"))

	d.space(10)
	d.text(StyleHeading, "1. Data Summary")
	d.text(StyleBody, "Number of rows: %d", s.RowCount)
	d.text(StyleBody, "Number of columns: %d", s.ColumnCount)
	d.text(StyleBody, "Columns: %s", listColumns(s.ColumnNames))

	d.space(10)
	d.text(StyleHeading, "2. Statistical Analysis")
	for _, name := range s.NumericColumns {
		st := s.Stats[name]
		d.space(5)
		d.text(StyleLabel, "Statistics for %s:", name)
		d.text(StyleBody, "min: %.2f", st.Min)
		d.text(StyleBody, "max: %.2f", st.Max)
		d.text(StyleBody, "mean: %.2f", st.Mean)
		d.text(StyleBody, "median: %.2f", st.Median)
	}

	if len(charts) > 0 {
		d.space(10)
		d.text(StyleHeading, "3. Visualizations")
		for i, p := range charts {
			d.space(5)
			d.text(StyleBody, "Chart %d:", i+1)
			d.image(p)
			d.space(5)
		}
	}
	return d
}

func listColumns(names []string) string {
	if len(names) <= maxListedColumns {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:maxListedColumns], ", ") + "..."
}

// Lines returns the text of every text block, in order.
func (d *Document) Lines() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == BlockText {
			out = append(out, b.Text)
		}
	}
	return out
}

// Images returns the embedded image paths, in order.
func (d *Document) Images() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == BlockImage {
			out = append(out, b.Image)
		}
	}
	return out
}
