package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/headline-goat/abtest/internal/stats"
)

var (
	// ErrMissing is returned when a group or a column is absent.
	ErrMissing = errors.New("missing value")

	// ErrFormat is returned for malformed input files.
	ErrFormat = errors.New("malformed table")
)

// Frame is a two-group table of named numeric columns, one row per group.
type Frame struct {
	rows map[string]map[string]float64
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{rows: make(map[string]map[string]float64)}
}

// Set stores value in the given group row and column.
func (f *Frame) Set(group, field string, value float64) {
	row, ok := f.rows[group]
	if !ok {
		row = make(map[string]float64)
		f.rows[group] = row
	}
	row[field] = value
}

// Value implements stats.Table.
func (f *Frame) Value(group, field string) (float64, error) {
	row, ok := f.rows[group]
	if !ok {
		return 0, fmt.Errorf("%w: group %q", ErrMissing, group)
	}
	v, ok := row[field]
	if !ok {
		return 0, fmt.Errorf("%w: column %q in group %q", ErrMissing, field, group)
	}
	return v, nil
}

// Groups returns the row labels in sorted order.
func (f *Frame) Groups() []string {
	groups := make([]string, 0, len(f.rows))
	for g := range f.rows {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Fields returns the union of column names in sorted order.
func (f *Frame) Fields() []string {
	seen := make(map[string]struct{})
	for _, row := range f.rows {
		for field := range row {
			seen[field] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks that both the test and the control rows exist.
func (f *Frame) Validate() error {
	for _, g := range []string{stats.GroupTest, stats.GroupControl} {
		if _, ok := f.rows[g]; !ok {
			return fmt.Errorf("%w: group %q", ErrMissing, g)
		}
	}
	return nil
}

var _ stats.Table = (*Frame)(nil)
