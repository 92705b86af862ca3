package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/KaramelBytes/csvreport-cli/internal/analysis"
	"github.com/KaramelBytes/csvreport-cli/internal/fsutil"
	"github.com/go-pdf/fpdf"
)

const (
	lineHeight = 10.0
	imageX     = 20.0
	imageWidth = 170.0
	fontFamily = "Helvetica"
)

// Options controls PDF generation.
type Options struct {
	// Now supplies the generation date; nil means time.Now.
	Now func() time.Time
	// Compress enables stream compression in the output PDF.
	Compress bool
}

// DefaultOptions returns the wall clock and compressed output.
func DefaultOptions() Options {
	return Options{Now: time.Now, Compress: true}
}

// Build writes the report for s with the given chart images to output and
// returns output. Every chart path must exist before anything is written.
func Build(s *analysis.Summary, charts []string, output string, opt Options) (string, error) {
	for _, p := range charts {
		if _, err := os.Stat(p); err != nil {
			return "", &MissingAssetError{Path: p, Err: err}
		}
	}
	now := time.Now
	if opt.Now != nil {
		now = opt.Now
	}
	at := now()
	doc := Compose(s, charts, at)
	data, err := doc.RenderPDF(at, opt.Compress)
	if err != nil {
		return "", &WriteError{Path: output, Err: err}
	}
	if err := fsutil.SafeWriteFile(output, data); err != nil {
		return "", &WriteError{Path: output, Err: err}
	}
	return output, nil
}

// RenderPDF lays the document out on A4 pages and returns the PDF bytes.
func (d *Document) RenderPDF(created time.Time, compress bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetCreationDate(created)
	pdf.SetTitle(Title, true)
	pdf.AddPage()
	// Core fonts are single-byte; map UTF-8 input onto their code page.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, b := range d.Blocks {
		switch b.Kind {
		case BlockSpace:
			pdf.Ln(b.Space)
		case BlockImage:
			pdf.ImageOptions(b.Image, imageX, pdf.GetY(), imageWidth, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		case BlockText:
			align := "L"
			switch b.Style {
			case StyleTitle:
				pdf.SetFont(fontFamily, "B", 16)
				align = "C"
			case StyleHeading:
				pdf.SetFont(fontFamily, "B", 14)
			case StyleLabel:
				pdf.SetFont(fontFamily, "B", 12)
			default:
				pdf.SetFont(fontFamily, "", 12)
			}
			pdf.CellFormat(0, lineHeight, tr(b.Text), "", 1, align, false, 0, "")
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
