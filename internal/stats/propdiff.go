package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// PropSample holds success and trial counts of one sample.
type PropSample struct {
	Successes int `json:"successes"`
	Trials    int `json:"trials"`
}

// Rate returns Successes/Trials.
func (s PropSample) Rate() float64 {
	return float64(s.Successes) / float64(s.Trials)
}

func (s PropSample) validate(label string) error {
	if s.Trials <= 0 {
		return fmt.Errorf("%w: %s trials %d must be positive", ErrInvalidArgument, label, s.Trials)
	}
	if s.Successes < 0 || s.Successes > s.Trials {
		return fmt.Errorf("%w: %s successes %d must be within [0, %d]", ErrDomain, label, s.Successes, s.Trials)
	}
	return nil
}

func validatePair(a, b PropSample) error {
	if err := a.validate("test"); err != nil {
		return err
	}
	return b.validate("control")
}

// PropDiffZStat performs the pooled two-proportion z-test of the test
// sample a against the control sample b.
func PropDiffZStat(a, b PropSample, alt Alternative) (z, p float64, err error) {
	if err := checkAlternative(alt); err != nil {
		return 0, 0, err
	}
	if err := validatePair(a, b); err != nil {
		return 0, 0, err
	}

	na, nb := float64(a.Trials), float64(b.Trials)
	pooled := float64(a.Successes+b.Successes) / (na + nb)
	se := math.Sqrt(pooled * (1 - pooled) * (1/na + 1/nb))
	if se == 0 {
		return 0, 0, fmt.Errorf("%w: pooled standard error is zero (pooled proportion %v)", ErrDivisionByZero, pooled)
	}

	z = (a.Rate() - b.Rate()) / se
	switch alt {
	case TwoSided:
		p = 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	case Larger:
		p = 1 - distuv.UnitNormal.CDF(z)
	case Smaller:
		p = distuv.UnitNormal.CDF(z)
	default:
		return 0, 0, checkAlternative(alt)
	}
	return z, p, nil
}

// PropDiffCI is the outcome of PropDiffConfInt.
type PropDiffCI struct {
	Diff          float64  // p_a - p_b
	ConfInt       Interval // normalized by p_b
	CriticalValue float64  // two-sided critical z
}

// PropDiffConfInt returns the Wald interval for p_a - p_b, using the
// unpooled variance, expressed as a fraction of the control proportion.
func PropDiffConfInt(a, b PropSample, significance float64) (PropDiffCI, error) {
	if err := ValidateSignificance(significance); err != nil {
		return PropDiffCI{}, err
	}
	if err := validatePair(a, b); err != nil {
		return PropDiffCI{}, err
	}

	pa, pb := a.Rate(), b.Rate()
	variance := pa*(1-pa)/float64(a.Trials) + pb*(1-pb)/float64(b.Trials)
	se := math.Sqrt(variance)
	z := distuv.UnitNormal.Quantile(1 - significance/2)
	diff := pa - pb

	ci, err := normalize(diff-z*se, diff+z*se, pb)
	if err != nil {
		return PropDiffCI{}, fmt.Errorf("control proportion is zero: %w", err)
	}
	return PropDiffCI{Diff: diff, ConfInt: ci, CriticalValue: z}, nil
}
