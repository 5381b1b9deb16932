package stats_test

import (
	"testing"

	"github.com/headline-goat/abtest/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	meanA = stats.MeanSample{Mean: 10, Variance: 4, Count: 30}
	meanB = stats.MeanSample{Mean: 8, Variance: 4, Count: 30}
)

func TestMeanDiffTStat_TwoSided(t *testing.T) {
	res, err := stats.MeanDiffTStat(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)

	assert.InDelta(t, 3.8730, res.Statistic, 1e-4)
	assert.Equal(t, 58.0, res.DoF)
	assert.InDelta(t, 0.000276, res.PValue, 2e-5)
	assert.InDelta(t, 2.0017, res.CriticalValue, 1e-3)
}

func TestMeanDiffTStat_OneSided(t *testing.T) {
	larger, err := stats.MeanDiffTStat(meanA, meanB, stats.Larger, 0.05)
	require.NoError(t, err)
	smaller, err := stats.MeanDiffTStat(meanA, meanB, stats.Smaller, 0.05)
	require.NoError(t, err)

	assert.InDelta(t, 0.000138, larger.PValue, 1e-5)
	assert.InDelta(t, 1, smaller.PValue, 1e-3)
	assert.Greater(t, larger.CriticalValue, 0.0)
	assert.Less(t, smaller.CriticalValue, 0.0)
	assert.InDelta(t, larger.CriticalValue, -smaller.CriticalValue, 1e-6)
}

func TestMeanDiffTStat_TwoSidedIsTwiceOneSided(t *testing.T) {
	cases := []struct {
		name string
		a, b stats.MeanSample
	}{
		{"positive", meanA, meanB},
		{"negative", meanB, meanA},
		{"small", stats.MeanSample{Mean: 1.1, Variance: 2, Count: 12}, stats.MeanSample{Mean: 1, Variance: 3, Count: 9}},
		{"zero", stats.MeanSample{Mean: 5, Variance: 1, Count: 10}, stats.MeanSample{Mean: 5, Variance: 2, Count: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			two, err := stats.MeanDiffTStat(tc.a, tc.b, stats.TwoSided, 0.05)
			require.NoError(t, err)
			larger, err := stats.MeanDiffTStat(tc.a, tc.b, stats.Larger, 0.05)
			require.NoError(t, err)
			smaller, err := stats.MeanDiffTStat(tc.a, tc.b, stats.Smaller, 0.05)
			require.NoError(t, err)

			if two.Statistic >= 0 {
				assert.InDelta(t, two.PValue, 2*larger.PValue, 1e-12)
			}
			if two.Statistic <= 0 {
				assert.InDelta(t, two.PValue, 2*smaller.PValue, 1e-12)
			}
		})
	}
}

func TestMeanDiffTStat_Idempotent(t *testing.T) {
	first, err := stats.MeanDiffTStat(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)
	second, err := stats.MeanDiffTStat(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMeanDiffTStat_WelchDoF(t *testing.T) {
	a := stats.MeanSample{Mean: 10, Variance: 4, Count: 30}
	b := stats.MeanSample{Mean: 9, Variance: 9, Count: 20}

	pooled, err := stats.MeanDiffTStat(a, b, stats.TwoSided, 0.05)
	require.NoError(t, err)
	welch, err := stats.MeanDiffTStat(a, b, stats.TwoSided, 0.05, stats.WithWelchDoF())
	require.NoError(t, err)

	assert.Equal(t, 48.0, pooled.DoF)
	assert.InDelta(t, 30.1908, welch.DoF, 1e-3)
	assert.Equal(t, pooled.Statistic, welch.Statistic)
	assert.Greater(t, welch.PValue, pooled.PValue)
}

func TestMeanDiffTStat_Errors(t *testing.T) {
	cases := []struct {
		name string
		a, b stats.MeanSample
		alt  stats.Alternative
		sig  float64
		opts []stats.MeanDiffOption
		want error
	}{
		{"unknown alternative", meanA, meanB, stats.Alternative(7), 0.05, nil, stats.ErrInvalidArgument},
		{"zero count", stats.MeanSample{Mean: 1, Variance: 1}, meanB, stats.TwoSided, 0.05, nil, stats.ErrInvalidArgument},
		{"negative variance", stats.MeanSample{Mean: 1, Variance: -1, Count: 5}, meanB, stats.TwoSided, 0.05, nil, stats.ErrDomain},
		{"zero significance", meanA, meanB, stats.TwoSided, 0, nil, stats.ErrDomain},
		{"significance of one", meanA, meanB, stats.TwoSided, 1, nil, stats.ErrDomain},
		{"zero standard error", stats.MeanSample{Mean: 1, Count: 5}, stats.MeanSample{Mean: 2, Count: 5}, stats.TwoSided, 0.05, nil, stats.ErrDivisionByZero},
		{"zero dof", stats.MeanSample{Mean: 1, Variance: 1, Count: 1}, stats.MeanSample{Mean: 2, Variance: 1, Count: 1}, stats.TwoSided, 0.05, nil, stats.ErrDomain},
		{"welch zero variances", stats.MeanSample{Mean: 1, Count: 5}, stats.MeanSample{Mean: 2, Count: 5}, stats.TwoSided, 0.05, []stats.MeanDiffOption{stats.WithWelchDoF()}, stats.ErrDomain},
		{"welch single observation", stats.MeanSample{Mean: 1, Variance: 1, Count: 1}, meanB, stats.TwoSided, 0.05, []stats.MeanDiffOption{stats.WithWelchDoF()}, stats.ErrDomain},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stats.MeanDiffTStat(tc.a, tc.b, tc.alt, tc.sig, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMeanDiffTStat_SingleObservationWithPeer(t *testing.T) {
	// n_a=1, n_b=2 gives dof=1, which is still valid.
	res, err := stats.MeanDiffTStat(
		stats.MeanSample{Mean: 3, Variance: 1, Count: 1},
		stats.MeanSample{Mean: 2, Variance: 1, Count: 2},
		stats.TwoSided, 0.05,
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.DoF)
}

func TestMeanDiffConfInt(t *testing.T) {
	ci, err := stats.MeanDiffConfInt(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)

	assert.InDelta(t, 0.12079, ci.Low, 1e-4)
	assert.InDelta(t, 0.37921, ci.High, 1e-4)
	assert.LessOrEqual(t, ci.Low, ci.High)
}

func TestMeanDiffConfInt_IgnoresAlternative(t *testing.T) {
	two, err := stats.MeanDiffConfInt(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)

	for _, alt := range []stats.Alternative{stats.Larger, stats.Smaller} {
		ci, err := stats.MeanDiffConfInt(meanA, meanB, alt, 0.05)
		require.NoError(t, err)
		assert.Equal(t, two, ci, alt.String())
	}
}

func TestMeanDiffConfInt_NegativeControlMeanIsReordered(t *testing.T) {
	b := stats.MeanSample{Mean: -8, Variance: 4, Count: 30}
	a := stats.MeanSample{Mean: -6, Variance: 4, Count: 30}

	ci, err := stats.MeanDiffConfInt(a, b, stats.TwoSided, 0.05)
	require.NoError(t, err)

	// raw interval is [0.9663, 3.0337]; dividing by -8 flips it
	assert.InDelta(t, -0.37921, ci.Low, 1e-4)
	assert.InDelta(t, -0.12079, ci.High, 1e-4)
	assert.LessOrEqual(t, ci.Low, ci.High)
}

func TestMeanDiffConfInt_ZeroVariances(t *testing.T) {
	// With no spread the interval collapses onto delta / mu_b = 2 / 8.
	ci, err := stats.MeanDiffConfInt(
		stats.MeanSample{Mean: 10, Count: 30},
		stats.MeanSample{Mean: 8, Count: 30},
		stats.TwoSided, 0.05,
	)
	require.NoError(t, err)
	assert.Equal(t, stats.Interval{Low: 0.25, High: 0.25}, ci)
}

func TestMeanDiffConfInt_Idempotent(t *testing.T) {
	first, err := stats.MeanDiffConfInt(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)
	second, err := stats.MeanDiffConfInt(meanA, meanB, stats.TwoSided, 0.05)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMeanDiffConfInt_ZeroControlMean(t *testing.T) {
	_, err := stats.MeanDiffConfInt(meanA, stats.MeanSample{Mean: 0, Variance: 4, Count: 30}, stats.TwoSided, 0.05)
	assert.ErrorIs(t, err, stats.ErrDivisionByZero)
}

func TestMeanDiffConfInt_UnknownAlternative(t *testing.T) {
	_, err := stats.MeanDiffConfInt(meanA, meanB, stats.Alternative(-1), 0.05)
	assert.ErrorIs(t, err, stats.ErrInvalidArgument)
}
