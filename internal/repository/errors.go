package repository

import "errors"

var (
	// ErrNoMeasurements indicates a file with a header but no data rows
	ErrNoMeasurements = errors.New("no density measurements in file")
)
