package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headline-goat/abtest/internal/stats"
	"github.com/headline-goat/abtest/internal/store"
	"github.com/headline-goat/abtest/internal/testutil"
)

func TestCreateExperiment(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	e, err := s.CreateExperiment(ctx, "checkout", "signup rate")
	require.NoError(t, err)
	assert.Equal(t, "checkout", e.Name)
	assert.Equal(t, store.StateRunning, e.State)
	assert.NotZero(t, e.ID)

	got, err := s.GetExperiment(ctx, "checkout")
	require.NoError(t, err)
	assert.Equal(t, "signup rate", got.Description)
	assert.Empty(t, got.WinnerGroup)
}

func TestCreateExperiment_Duplicate(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)
	_, err = s.CreateExperiment(ctx, "checkout", "")
	assert.Error(t, err)
}

func TestGetExperiment_NotFound(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)

	_, err := s.GetExperiment(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListExperiments(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	experiments, err := s.ListExperiments(ctx)
	require.NoError(t, err)
	assert.Empty(t, experiments)

	for _, name := range []string{"hero", "pricing", "checkout"} {
		_, err := s.CreateExperiment(ctx, name, "")
		require.NoError(t, err)
	}

	experiments, err = s.ListExperiments(ctx)
	require.NoError(t, err)
	require.Len(t, experiments, 3)
	// newest first
	assert.Equal(t, "checkout", experiments[0].Name)
}

func TestSetMetric_Upsert(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)

	require.NoError(t, s.SetMetric(ctx, "checkout", stats.GroupTest, "signups", 100))
	require.NoError(t, s.SetMetric(ctx, "checkout", stats.GroupTest, "signups", 120))
	require.NoError(t, s.SetMetric(ctx, "checkout", stats.GroupControl, "signups", 100))

	metrics, err := s.GetMetrics(ctx, "checkout")
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, stats.GroupTest, metrics[0].Group)
	assert.Equal(t, 120.0, metrics[0].Value)
}

func TestSetMetric_Errors(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	err := s.SetMetric(ctx, "missing", stats.GroupTest, "signups", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)
	err = s.SetMetric(ctx, "checkout", "holdout", "signups", 1)
	assert.ErrorIs(t, err, store.ErrInvalidGroup)
}

func TestFrame_RunsNamedTest(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)
	for group, vals := range map[string][2]float64{
		stats.GroupTest:    {120, 1000},
		stats.GroupControl: {100, 1000},
	} {
		require.NoError(t, s.SetMetric(ctx, "checkout", group, "signups", vals[0]))
		require.NoError(t, s.SetMetric(ctx, "checkout", group, "visitors", vals[1]))
	}

	frame, err := s.Frame(ctx, "checkout")
	require.NoError(t, err)

	r, err := stats.RunNamedTest(frame, "signups", "visitors", 0.05, stats.TwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 0.1529, r.PValue, 1e-3)
}

func TestSetWinner(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)

	require.NoError(t, s.SetWinner(ctx, "checkout", stats.GroupTest))

	e, err := s.GetExperiment(ctx, "checkout")
	require.NoError(t, err)
	assert.Equal(t, store.StateCompleted, e.State)
	assert.Equal(t, stats.GroupTest, e.WinnerGroup)

	assert.ErrorIs(t, s.SetWinner(ctx, "nonexistent", stats.GroupTest), store.ErrNotFound)
	assert.ErrorIs(t, s.SetWinner(ctx, "checkout", "both"), store.ErrInvalidGroup)
}

func TestDeleteExperiment(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)
	require.NoError(t, s.SetMetric(ctx, "checkout", stats.GroupTest, "signups", 1))

	require.NoError(t, s.DeleteExperiment(ctx, "checkout"))

	_, err = s.GetExperiment(ctx, "checkout")
	assert.ErrorIs(t, err, store.ErrNotFound)
	metrics, err := s.GetMetrics(ctx, "checkout")
	require.NoError(t, err)
	assert.Empty(t, metrics)

	assert.ErrorIs(t, s.DeleteExperiment(ctx, "checkout"), store.ErrNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	s, path := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := s.CreateExperiment(ctx, "checkout", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := store.Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.GetExperiment(ctx, "checkout")
	assert.NoError(t, err)
}
