package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/headline-goat/abtest/internal/dataset"
	"github.com/headline-goat/abtest/internal/stats"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidGroup = errors.New("group must be \"test\" or \"control\"")
)

type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS experiments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT 'running',
    winner_group TEXT,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_experiments_state ON experiments(state);

CREATE TABLE IF NOT EXISTS metrics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    experiment TEXT NOT NULL,
    grp TEXT NOT NULL,
    field TEXT NOT NULL,
    value REAL NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (unixepoch()),
    FOREIGN KEY (experiment) REFERENCES experiments(name)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_metrics_cell ON metrics(experiment, grp, field);
`

// Open opens (creating if needed) the database at dbPath. A nil logger
// disables logging.
func Open(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug("opened experiment store", zap.String("path", dbPath))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateExperiment(ctx context.Context, name, description string) (*Experiment, error) {
	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO experiments (name, description, state, created_at, updated_at)
		 VALUES (?, ?, 'running', ?, ?)`,
		name, description, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert experiment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	s.logger.Info("created experiment", zap.String("experiment", name), zap.Int64("id", id))
	return &Experiment{
		ID:          id,
		Name:        name,
		Description: description,
		State:       StateRunning,
		CreatedAt:   time.Unix(now, 0),
		UpdatedAt:   time.Unix(now, 0),
	}, nil
}

const experimentColumns = `id, name, description, state, winner_group, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExperiment(row scanner) (*Experiment, error) {
	var e Experiment
	var winner sql.NullString
	var createdAt, updatedAt int64

	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.State, &winner, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.WinnerGroup = winner.String
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)
	return &e, nil
}

func (s *SQLiteStore) GetExperiment(ctx context.Context, name string) (*Experiment, error) {
	e, err := scanExperiment(s.db.QueryRowContext(ctx,
		`SELECT `+experimentColumns+` FROM experiments WHERE name = ?`, name,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) ListExperiments(ctx context.Context) ([]*Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+experimentColumns+` FROM experiments ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var experiments []*Experiment
	for rows.Next() {
		e, err := scanExperiment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment: %w", err)
		}
		experiments = append(experiments, e)
	}
	return experiments, rows.Err()
}

// SetWinner records the winning group and marks the experiment completed.
func (s *SQLiteStore) SetWinner(ctx context.Context, name, group string) error {
	if err := checkGroup(group); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE experiments SET state = ?, winner_group = ?, updated_at = ? WHERE name = ?`,
		string(StateCompleted), group, time.Now().Unix(), name,
	)
	if err != nil {
		return fmt.Errorf("failed to set winner: %w", err)
	}
	if err := expectRow(result); err != nil {
		return err
	}

	s.logger.Info("declared winner", zap.String("experiment", name), zap.String("group", group))
	return nil
}

func (s *SQLiteStore) DeleteExperiment(ctx context.Context, name string) error {
	// First delete related metrics
	if _, err := s.db.ExecContext(ctx, `DELETE FROM metrics WHERE experiment = ?`, name); err != nil {
		return fmt.Errorf("failed to delete metrics: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM experiments WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete experiment: %w", err)
	}
	if err := expectRow(result); err != nil {
		return err
	}

	s.logger.Info("deleted experiment", zap.String("experiment", name))
	return nil
}

// SetMetric stores one cell of the experiment's table, replacing any
// previous value.
func (s *SQLiteStore) SetMetric(ctx context.Context, name, group, field string, value float64) error {
	if err := checkGroup(group); err != nil {
		return err
	}
	if _, err := s.GetExperiment(ctx, name); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metrics (experiment, grp, field, value, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(experiment, grp, field) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, group, field, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set metric: %w", err)
	}

	s.logger.Debug("set metric",
		zap.String("experiment", name),
		zap.String("group", group),
		zap.String("field", field),
		zap.Float64("value", value),
	)
	return nil
}

func (s *SQLiteStore) GetMetrics(ctx context.Context, name string) ([]Metric, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grp, field, value, updated_at FROM metrics
		 WHERE experiment = ? ORDER BY grp DESC, field`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	defer rows.Close()

	var metrics []Metric
	for rows.Next() {
		var m Metric
		var updatedAt int64
		if err := rows.Scan(&m.Group, &m.Field, &m.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		m.UpdatedAt = time.Unix(updatedAt, 0)
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// Frame returns the experiment's metrics as a two-group table.
func (s *SQLiteStore) Frame(ctx context.Context, name string) (*dataset.Frame, error) {
	if _, err := s.GetExperiment(ctx, name); err != nil {
		return nil, err
	}
	metrics, err := s.GetMetrics(ctx, name)
	if err != nil {
		return nil, err
	}

	frame := dataset.NewFrame()
	for _, m := range metrics {
		frame.Set(m.Group, m.Field, m.Value)
	}
	return frame, nil
}

func checkGroup(group string) error {
	if group != stats.GroupTest && group != stats.GroupControl {
		return fmt.Errorf("%w: got %q", ErrInvalidGroup, group)
	}
	return nil
}

func expectRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
