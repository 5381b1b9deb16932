package stats

import (
	"fmt"
	"strings"
)

// Alternative is the alternative hypothesis of a two-sample test.
// Sample A is the test group and sample B is the control group.
type Alternative int

const (
	TwoSided Alternative = iota // A != B
	Larger                      // A > B
	Smaller                     // A < B
)

// ParseAlternative accepts "two-sided", "larger" and "smaller".
func ParseAlternative(s string) (Alternative, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "two-sided":
		return TwoSided, nil
	case "larger":
		return Larger, nil
	case "smaller":
		return Smaller, nil
	default:
		return 0, fmt.Errorf("%w: unknown alternative %q (want two-sided, larger or smaller)", ErrInvalidArgument, s)
	}
}

func (a Alternative) String() string {
	switch a {
	case TwoSided:
		return "two-sided"
	case Larger:
		return "larger"
	case Smaller:
		return "smaller"
	default:
		return fmt.Sprintf("Alternative(%d)", int(a))
	}
}

// Valid reports whether a is one of the three known alternatives.
func (a Alternative) Valid() bool {
	return a == TwoSided || a == Larger || a == Smaller
}

func (a Alternative) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: unknown alternative %d", ErrInvalidArgument, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Alternative) UnmarshalText(text []byte) error {
	parsed, err := ParseAlternative(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// symbol is the relation used in the alternative hypothesis text.
func (a Alternative) symbol() string {
	switch a {
	case Larger:
		return ">"
	case Smaller:
		return "<"
	default:
		return "!="
	}
}

func checkAlternative(a Alternative) error {
	if !a.Valid() {
		return fmt.Errorf("%w: unknown alternative %d", ErrInvalidArgument, int(a))
	}
	return nil
}

// ValidateSignificance checks that significance lies strictly between 0 and 1.
func ValidateSignificance(significance float64) error {
	if !(significance > 0 && significance < 1) {
		return fmt.Errorf("%w: significance %v must be strictly between 0 and 1", ErrDomain, significance)
	}
	return nil
}
