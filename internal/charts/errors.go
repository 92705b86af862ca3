package charts

import "fmt"

// RenderError indicates a chart directory could not be created or a chart
// could not be rendered or written. Chart is empty for directory failures.
type RenderError struct {
	Chart string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Chart == "" {
		return fmt.Sprintf("render charts in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("render %s chart %s: %v", e.Chart, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
