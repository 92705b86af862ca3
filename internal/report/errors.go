package report

import "fmt"

// WriteError indicates the report could not be produced at its destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// MissingAssetError indicates a chart referenced by the report does not exist.
type MissingAssetError struct {
	Path string
	Err  error
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing chart image %s: %v", e.Path, e.Err)
}

func (e *MissingAssetError) Unwrap() error { return e.Err }
