package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options controls how tabular data is loaded.
type Options struct {
	// Delimiter for CSV fields. If 0, chosen from the file extension (',' or '\t' for .tsv).
	Delimiter rune
}

// DefaultOptions returns the loader defaults: comma-separated input.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
	// KindBool columns hold only true/false literals; they are neither numeric nor text-like.
	KindBool Kind = "bool"
)

// Table is a loaded dataset: named columns with their raw cells, in header order.
type Table struct {
	Name    string
	Rows    int
	Columns []Column
}

// Column holds one column of a Table. Values is only populated for numeric
// columns and uses NaN for missing cells.
type Column struct {
	Name   string
	Kind   Kind
	Cells  []string
	Values []float64
}

// Names returns the column names in header order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// FirstOfKind returns the first column (by header order) with the given kind.
func (t *Table) FirstOfKind(k Kind) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Kind == k {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Numbers returns the non-missing values of a numeric column.
func (c *Column) Numbers() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Present returns the non-missing cells of the column, in row order.
func (c *Column) Present() []string {
	out := make([]string, 0, len(c.Cells))
	for _, v := range c.Cells {
		if !isMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// naMarkers are the cell values treated as missing in addition to the empty string.
var naMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {},
	"None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isMissing(v string) bool {
	if strings.TrimSpace(v) == "" {
		return true
	}
	_, ok := naMarkers[v]
	return ok
}

// Load reads a delimited file with a header row into a Table and infers column kinds.
func Load(path string, opt Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileAccessError{Path: path, Err: errors.New("is a directory")}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	// A leading UTF-8 byte-order mark would otherwise end up in the first header name.
	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.Comma = delim
	r.FieldsPerRecord = -1
	// A quote inside an unquoted field is a literal character.
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Err: errors.New("no columns to parse from file")}
		}
		return nil, csvParseError(path, err)
	}
	ncol := len(header)
	names := uniqueNames(header)
	cells := make([][]string, ncol)

	t := &Table{Name: filepath.Base(path)}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvParseError(path, err)
		}
		if len(rec) > ncol {
			line, _ := r.FieldPos(0)
			return nil, &ParseError{Path: path, Line: line, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		t.Rows++
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cells[j] = append(cells[j], v)
		}
	}

	t.Columns = make([]Column, ncol)
	for j := range t.Columns {
		t.Columns[j] = inferColumn(names[j], cells[j])
	}
	return t, nil
}

func csvParseError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Path: path, Err: err}
}

// inferColumn marks a column bool when every cell is a true/false literal,
// numeric when it has rows and every non-missing cell parses as a number
// (all-missing columns included), and text-like otherwise.
func inferColumn(name string, cells []string) Column {
	c := Column{Name: name, Kind: KindText, Cells: cells}
	if c.Cells == nil {
		c.Cells = []string{}
	}
	if len(cells) == 0 {
		return c
	}
	if isBoolColumn(cells) {
		c.Kind = KindBool
		return c
	}
	vals := make([]float64, len(cells))
	for i, v := range cells {
		if isMissing(v) {
			vals[i] = math.NaN()
			continue
		}
		x, ok := parseNumeric(v)
		if !ok {
			return c
		}
		vals[i] = x
	}
	c.Kind = KindNumeric
	c.Values = vals
	return c
}

var boolLiterals = map[string]struct{}{
	"True": {}, "TRUE": {}, "true": {}, "False": {}, "FALSE": {}, "false": {},
}

// isBoolColumn reports whether every cell is a boolean literal. A single
// missing cell makes the column text-like instead.
func isBoolColumn(cells []string) bool {
	for _, v := range cells {
		if _, ok := boolLiterals[v]; !ok {
			return false
		}
	}
	return true
}

func parseNumeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var ne *strconv.NumError
		// Out-of-range literals still parse to ±Inf.
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// uniqueNames keeps header names as written, names blank headers by position and
// suffixes repeats as "name.1", "name.2", ... skipping names already taken.
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	counts := map[string]int{}
	for i, h := range header {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cur := counts[name]
		for cur > 0 {
			counts[name] = cur + 1
			name = fmt.Sprintf("%s.%d", name, cur)
			cur = counts[name]
		}
		out[i] = name
		counts[name] = cur + 1
	}
	return out
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
