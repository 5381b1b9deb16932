package store

import "time"

type ExperimentState string

const (
	StateRunning   ExperimentState = "running"
	StateCompleted ExperimentState = "completed"
)

type Experiment struct {
	ID          int64
	Name        string
	Description string // Optional description of what is measured
	State       ExperimentState
	WinnerGroup string // "test" or "control" once completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Metric is one cell of an experiment's two-group table.
type Metric struct {
	Group     string
	Field     string
	Value     float64
	UpdatedAt time.Time
}
