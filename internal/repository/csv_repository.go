package repository

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	apperrors "go-densitometer/internal/errors"
)

func init() {
	// A file without the density column is useless; surface it as an error
	// instead of silently yielding all-zero measurements.
	gocsv.FailIfUnmatchedStructTags = true
}

// densityRow maps one CSV measurement row. Extra columns are ignored.
type densityRow struct {
	Density float64 `csv:"density"`
}

// CSVDensityRepository implements DensityRepository over local CSV files
type CSVDensityRepository struct{}

// NewCSVDensityRepository creates a new CSV-backed density repository
func NewCSVDensityRepository() DensityRepository {
	return &CSVDensityRepository{}
}

// Load reads the density column of a CSV file in row order
func (r *CSVDensityRepository) Load(path string) (*DensitySeries, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("measurement file %s not found", path), err)
		}
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	var rows []densityRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("failed to parse %s", path), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParseError(path, ErrNoMeasurements)
	}

	densities := make([]float64, len(rows))
	for i, row := range rows {
		densities[i] = row.Density
	}
	return &DensitySeries{Path: path, Densities: densities}, nil
}
