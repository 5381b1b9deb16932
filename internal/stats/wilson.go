package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// WilsonInterval calculates the Wilson score confidence interval
// for a binomial proportion. It's more accurate for small samples
// than the normal approximation.
func WilsonInterval(s PropSample, significance float64) (Interval, error) {
	if err := ValidateSignificance(significance); err != nil {
		return Interval{}, err
	}
	if err := s.validate("sample"); err != nil {
		return Interval{}, err
	}

	z := distuv.UnitNormal.Quantile(1 - significance/2)
	p := s.Rate()
	n := float64(s.Trials)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	spread := (z / denominator) * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))

	// Clamp to [0, 1]
	return Interval{
		Low:  math.Max(0, center-spread),
		High: math.Min(1, center+spread),
	}, nil
}
