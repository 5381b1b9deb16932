package store

import (
	"context"

	"github.com/headline-goat/abtest/internal/dataset"
)

// Store defines the interface for experiment storage operations
type Store interface {
	// Experiment operations
	CreateExperiment(ctx context.Context, name, description string) (*Experiment, error)
	GetExperiment(ctx context.Context, name string) (*Experiment, error)
	ListExperiments(ctx context.Context) ([]*Experiment, error)
	SetWinner(ctx context.Context, name, group string) error
	DeleteExperiment(ctx context.Context, name string) error

	// Metric operations
	SetMetric(ctx context.Context, name, group, field string, value float64) error
	GetMetrics(ctx context.Context, name string) ([]Metric, error)
	Frame(ctx context.Context, name string) (*dataset.Frame, error)

	// Lifecycle
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
