package stats

import "fmt"

// Interval is a closed interval with Low <= High.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (i Interval) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", i.Low, i.High)
}

// normalize divides the raw interval [lo, hi] by base. A negative base flips
// the sign of both bounds; the result is reordered so Low <= High holds.
func normalize(lo, hi, base float64) (Interval, error) {
	if base == 0 {
		return Interval{}, fmt.Errorf("%w: cannot normalize interval by a zero control value", ErrDivisionByZero)
	}
	lo, hi = lo/base, hi/base
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Low: lo, High: hi}, nil
}

// TestResult is the outcome of a two-sample test. DoF is zero for z-tests.
type TestResult struct {
	Statistic     float64     `json:"statistic"`
	DoF           float64     `json:"dof,omitempty"`
	PValue        float64     `json:"p_value"`
	CriticalValue float64     `json:"critical_value"`
	ConfInt       Interval    `json:"confint"`
	Alternative   Alternative `json:"alternative"`
	Significance  float64     `json:"significance"`
}
