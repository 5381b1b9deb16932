package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	mstats "github.com/montanaflynn/stats"

	"github.com/headline-goat/abtest/internal/stats"
)

// Column names produced by Summarize.
const (
	FieldMean     = "mean"
	FieldVariance = "variance"
	FieldCount    = "count"
)

// Summarize reduces raw per-unit observations of each group to the mean,
// sample variance and count columns the mean difference test reads.
func Summarize(observations map[string][]float64) (*Frame, error) {
	frame := NewFrame()
	for group, values := range observations {
		if len(values) < 2 {
			return nil, fmt.Errorf("%w: group %q needs at least 2 observations, got %d", ErrFormat, group, len(values))
		}
		data := mstats.Float64Data(values)
		mean, err := data.Mean()
		if err != nil {
			return nil, fmt.Errorf("group %q mean: %w", group, err)
		}
		variance, err := data.SampleVariance()
		if err != nil {
			return nil, fmt.Errorf("group %q variance: %w", group, err)
		}
		frame.Set(group, FieldMean, mean)
		frame.Set(group, FieldVariance, variance)
		frame.Set(group, FieldCount, float64(data.Len()))
	}

	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return frame, nil
}

// LoadObservationsCSV reads "group,value" rows and summarizes them. A header
// row is skipped when its value column is not numeric.
func LoadObservationsCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	observations := make(map[string][]float64)
	for i, rec := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, i+1, err)
		}
		group := strings.ToLower(strings.TrimSpace(rec[0]))
		if group != stats.GroupTest && group != stats.GroupControl {
			return nil, fmt.Errorf("%w: row %d: unknown group %q", ErrFormat, i+1, rec[0])
		}
		observations[group] = append(observations[group], v)
	}
	return Summarize(observations)
}
