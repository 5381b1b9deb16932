package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MeanSample holds the summary statistics of one sample.
type MeanSample struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Count    int     `json:"count"`
}

func (s MeanSample) validate(label string) error {
	if s.Count <= 0 {
		return fmt.Errorf("%w: %s count %d must be positive", ErrInvalidArgument, label, s.Count)
	}
	if math.IsNaN(s.Mean) || math.IsInf(s.Mean, 0) {
		return fmt.Errorf("%w: %s mean %v is not finite", ErrDomain, label, s.Mean)
	}
	if !(s.Variance >= 0) || math.IsInf(s.Variance, 0) {
		return fmt.Errorf("%w: %s variance %v must be finite and non-negative", ErrDomain, label, s.Variance)
	}
	return nil
}

type meanDiffConfig struct {
	welch bool
}

// MeanDiffOption adjusts the mean difference test.
type MeanDiffOption func(*meanDiffConfig)

// WithWelchDoF replaces the pooled degrees of freedom n_a+n_b-2 with the
// Welch-Satterthwaite approximation, which matches the unpooled standard
// error the test uses.
func WithWelchDoF() MeanDiffOption {
	return func(c *meanDiffConfig) {
		c.welch = true
	}
}

// TStat is the outcome of MeanDiffTStat.
type TStat struct {
	CriticalValue float64
	Statistic     float64
	PValue        float64
	DoF           float64
}

// meanDiff holds the quantities shared by the statistic and the interval.
type meanDiff struct {
	delta float64
	se    float64
	dof   float64
}

func newMeanDiff(a, b MeanSample, opts []MeanDiffOption) (meanDiff, error) {
	if err := a.validate("test"); err != nil {
		return meanDiff{}, err
	}
	if err := b.validate("control"); err != nil {
		return meanDiff{}, err
	}

	var cfg meanDiffConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	na, nb := float64(a.Count), float64(b.Count)
	va, vb := a.Variance/na, b.Variance/nb
	se := math.Sqrt(va + vb)

	dof := na + nb - 2
	if cfg.welch {
		if a.Count < 2 || b.Count < 2 {
			return meanDiff{}, fmt.Errorf("%w: Welch degrees of freedom need at least 2 observations per group", ErrDomain)
		}
		if se == 0 {
			return meanDiff{}, fmt.Errorf("%w: Welch degrees of freedom are undefined when both variances are zero", ErrDomain)
		}
		dof = (va + vb) * (va + vb) / (va*va/(na-1) + vb*vb/(nb-1))
	}
	if !(dof > 0) {
		return meanDiff{}, fmt.Errorf("%w: degrees of freedom %v must be positive", ErrDomain, dof)
	}

	return meanDiff{delta: a.Mean - b.Mean, se: se, dof: dof}, nil
}

func (m meanDiff) dist() distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: m.dof}
}

// MeanDiffTStat tests the difference of means of the test sample a and the
// control sample b. The standard error is sqrt(var_a/n_a + var_b/n_b) and
// the degrees of freedom default to n_a+n_b-2.
func MeanDiffTStat(a, b MeanSample, alt Alternative, significance float64, opts ...MeanDiffOption) (TStat, error) {
	if err := checkAlternative(alt); err != nil {
		return TStat{}, err
	}
	if err := ValidateSignificance(significance); err != nil {
		return TStat{}, err
	}
	m, err := newMeanDiff(a, b, opts)
	if err != nil {
		return TStat{}, err
	}

	if m.se == 0 {
		return TStat{}, fmt.Errorf("%w: standard error is zero (both variances are zero)", ErrDivisionByZero)
	}
	t := m.delta / m.se
	dist := m.dist()

	res := TStat{Statistic: t, DoF: m.dof}
	switch alt {
	case TwoSided:
		res.PValue = (1 - dist.CDF(math.Abs(t))) * 2
		res.CriticalValue = dist.Quantile(1 - significance/2)
	case Larger:
		res.PValue = 1 - dist.CDF(t)
		res.CriticalValue = dist.Quantile(1 - significance)
	case Smaller:
		res.PValue = dist.CDF(t)
		res.CriticalValue = dist.Quantile(significance)
	default:
		return TStat{}, checkAlternative(alt)
	}
	return res, nil
}

// MeanDiffConfInt returns the confidence interval for mu_a - mu_b expressed
// as a fraction of the control mean. The two-sided critical point is used
// for every alternative.
func MeanDiffConfInt(a, b MeanSample, alt Alternative, significance float64, opts ...MeanDiffOption) (Interval, error) {
	if err := checkAlternative(alt); err != nil {
		return Interval{}, err
	}
	if err := ValidateSignificance(significance); err != nil {
		return Interval{}, err
	}
	m, err := newMeanDiff(a, b, opts)
	if err != nil {
		return Interval{}, err
	}

	tCrit := m.dist().Quantile(1 - significance/2)
	lb := m.delta - tCrit*m.se
	ub := m.delta + tCrit*m.se
	return normalize(lb, ub, b.Mean)
}
