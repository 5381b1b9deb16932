package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headline-goat/abtest/internal/dataset"
	"github.com/headline-goat/abtest/internal/stats"
)

func TestSummarize(t *testing.T) {
	frame, err := dataset.Summarize(map[string][]float64{
		stats.GroupTest:    {2, 4, 6, 8},
		stats.GroupControl: {1, 2, 3},
	})
	require.NoError(t, err)

	mean, err := frame.Value(stats.GroupTest, dataset.FieldMean)
	require.NoError(t, err)
	variance, err := frame.Value(stats.GroupTest, dataset.FieldVariance)
	require.NoError(t, err)
	count, err := frame.Value(stats.GroupControl, dataset.FieldCount)
	require.NoError(t, err)

	assert.Equal(t, 5.0, mean)
	assert.InDelta(t, 20.0/3.0, variance, 1e-12)
	assert.Equal(t, 3.0, count)
}

func TestSummarize_TooFewObservations(t *testing.T) {
	_, err := dataset.Summarize(map[string][]float64{
		stats.GroupTest:    {1},
		stats.GroupControl: {1, 2},
	})
	assert.ErrorIs(t, err, dataset.ErrFormat)
}

func TestLoadObservationsCSV(t *testing.T) {
	in := "group,value\ntest,2\ntest,4\ntest,6\ncontrol,1\ncontrol,3\n"

	frame, err := dataset.LoadObservationsCSV(strings.NewReader(in))
	require.NoError(t, err)

	r, err := stats.RunNamedMeanTest(frame, dataset.FieldMean, dataset.FieldVariance, dataset.FieldCount, 0.05, stats.TwoSided)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.DoF)
	assert.Equal(t, 2.0, r.Diff)
}

func TestLoadObservationsCSV_UnknownGroup(t *testing.T) {
	_, err := dataset.LoadObservationsCSV(strings.NewReader("test,1\nholdout,2\n"))
	assert.ErrorIs(t, err, dataset.ErrFormat)
}
