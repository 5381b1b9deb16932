package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Group labels of the two rows of a Table.
const (
	GroupTest    = "test"
	GroupControl = "control"
)

// Table is a two-group table of named numeric columns.
type Table interface {
	Value(group, field string) (float64, error)
}

const (
	conclusionFail   = "Fail to reject the null hypothesis"
	conclusionReject = "Reject the null hypothesis - evidence suggests the alternative hypothesis is true"
)

// GroupSummary describes one group of a Report. ConfInt is the Wilson
// interval of the observed rate and is nil for mean tests.
type GroupSummary struct {
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Size    int       `json:"size"`
	ConfInt *Interval `json:"confint,omitempty"`
}

// Report is the read-only outcome of a named test.
type Report struct {
	Title                 string `json:"title"`
	Parameter             string `json:"parameter"`
	StatName              string `json:"stat_name"`
	NullHypothesis        string `json:"null_hypothesis"`
	AlternativeHypothesis string `json:"alternative_hypothesis"`
	TestResult
	Diff         float64        `json:"diff"`
	RelativeDiff float64        `json:"relative_diff"`
	Conclusion   string         `json:"conclusion"`
	Stars        string         `json:"max_confidence_level"`
	Groups       []GroupSummary `json:"groups"`
}

// Rejected reports whether the null hypothesis was rejected.
func (r *Report) Rejected() bool {
	return r.PValue <= r.Significance
}

// Stars rates a p-value: "***" below 0.01, "**" below 0.05, "*" below 0.10
// and "." otherwise.
func Stars(p float64) string {
	switch {
	case p < 0.01:
		return "***"
	case p < 0.05:
		return "**"
	case p < 0.10:
		return "*"
	default:
		return "."
	}
}

func conclusion(p, significance float64) string {
	if p > significance {
		return conclusionFail
	}
	return conclusionReject
}

func hypotheses(symbol string, alt Alternative) (null, alternative string) {
	null = fmt.Sprintf("Ho (null hypothesis) : %s_test = %s_control", symbol, symbol)
	alternative = fmt.Sprintf("Ha (alternative hypothesis) : %s_test %s %s_control", symbol, alt.symbol(), symbol)
	return null, alternative
}

func relative(diff, base float64) (float64, error) {
	if base == 0 {
		return 0, fmt.Errorf("%w: relative difference against a zero control value", ErrDivisionByZero)
	}
	return mstats.Round(diff/base, 2)
}

func countValue(t Table, group, field string) (int, error) {
	v, err := t.Value(group, field)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= math.MaxInt || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s.%s = %v is not a non-negative integer count", ErrDomain, group, field, v)
	}
	return int(v), nil
}

func propSample(t Table, group, numerator, denominator string) (PropSample, error) {
	succ, err := countValue(t, group, numerator)
	if err != nil {
		return PropSample{}, err
	}
	trials, err := countValue(t, group, denominator)
	if err != nil {
		return PropSample{}, err
	}
	return PropSample{Successes: succ, Trials: trials}, nil
}

func meanSample(t Table, group, mean, variance, count string) (MeanSample, error) {
	mu, err := t.Value(group, mean)
	if err != nil {
		return MeanSample{}, err
	}
	v, err := t.Value(group, variance)
	if err != nil {
		return MeanSample{}, err
	}
	n, err := countValue(t, group, count)
	if err != nil {
		return MeanSample{}, err
	}
	return MeanSample{Mean: mu, Variance: v, Count: n}, nil
}

// RunNamedTest runs the difference-of-proportions test on the
// numerator/denominator columns of the test and control rows of t.
func RunNamedTest(t Table, numerator, denominator string, significance float64, alt Alternative) (*Report, error) {
	a, err := propSample(t, GroupTest, numerator, denominator)
	if err != nil {
		return nil, err
	}
	b, err := propSample(t, GroupControl, numerator, denominator)
	if err != nil {
		return nil, err
	}

	z, p, err := PropDiffZStat(a, b, alt)
	if err != nil {
		return nil, fmt.Errorf("z statistic: %w", err)
	}
	ci, err := PropDiffConfInt(a, b, significance)
	if err != nil {
		return nil, fmt.Errorf("confidence interval: %w", err)
	}
	rel, err := relative(ci.Diff, b.Rate())
	if err != nil {
		return nil, err
	}

	groups := make([]GroupSummary, 0, 2)
	for _, g := range []struct {
		name   string
		sample PropSample
	}{{GroupTest, a}, {GroupControl, b}} {
		wilson, err := WilsonInterval(g.sample, significance)
		if err != nil {
			return nil, fmt.Errorf("%s interval: %w", g.name, err)
		}
		groups = append(groups, GroupSummary{
			Name:    g.name,
			Value:   g.sample.Rate(),
			Size:    g.sample.Trials,
			ConfInt: &wilson,
		})
	}

	null, ha := hypotheses("p", alt)
	return &Report{
		Title:                 fmt.Sprintf("Z test for difference in proportions for: p = %s/%s", numerator, denominator),
		Parameter:             fmt.Sprintf("p = %s/%s", numerator, denominator),
		StatName:              "z_stat",
		NullHypothesis:        null,
		AlternativeHypothesis: ha,
		TestResult: TestResult{
			Statistic:     z,
			PValue:        p,
			CriticalValue: ci.CriticalValue,
			ConfInt:       ci.ConfInt,
			Alternative:   alt,
			Significance:  significance,
		},
		Diff:         ci.Diff,
		RelativeDiff: rel,
		Conclusion:   conclusion(p, significance),
		Stars:        Stars(p),
		Groups:       groups,
	}, nil
}

// RunNamedMeanTest runs the difference-of-means test on the mean, variance
// and count columns of the test and control rows of t.
func RunNamedMeanTest(t Table, mean, variance, count string, significance float64, alt Alternative, opts ...MeanDiffOption) (*Report, error) {
	a, err := meanSample(t, GroupTest, mean, variance, count)
	if err != nil {
		return nil, err
	}
	b, err := meanSample(t, GroupControl, mean, variance, count)
	if err != nil {
		return nil, err
	}

	ts, err := MeanDiffTStat(a, b, alt, significance, opts...)
	if err != nil {
		return nil, fmt.Errorf("t statistic: %w", err)
	}
	ci, err := MeanDiffConfInt(a, b, alt, significance, opts...)
	if err != nil {
		return nil, fmt.Errorf("confidence interval: %w", err)
	}
	diff := a.Mean - b.Mean
	rel, err := relative(diff, b.Mean)
	if err != nil {
		return nil, err
	}

	null, ha := hypotheses("mu", alt)
	return &Report{
		Title:                 fmt.Sprintf("T test for difference in means for: %s", mean),
		Parameter:             fmt.Sprintf("mu = %s", mean),
		StatName:              "t_stat",
		NullHypothesis:        null,
		AlternativeHypothesis: ha,
		TestResult: TestResult{
			Statistic:     ts.Statistic,
			DoF:           ts.DoF,
			PValue:        ts.PValue,
			CriticalValue: ts.CriticalValue,
			ConfInt:       ci,
			Alternative:   alt,
			Significance:  significance,
		},
		Diff:         diff,
		RelativeDiff: rel,
		Conclusion:   conclusion(ts.PValue, significance),
		Stars:        Stars(ts.PValue),
		Groups: []GroupSummary{
			{Name: GroupTest, Value: a.Mean, Size: a.Count},
			{Name: GroupControl, Value: b.Mean, Size: b.Count},
		},
	}, nil
}
