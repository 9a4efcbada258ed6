package oddsmath

import (
	"fmt"
	"math"
)

// ErrZeroOdds is returned when American odds of 0 are supplied.
// 0 is not a representable price and would otherwise divide by zero.
var ErrZeroOdds = fmt.Errorf("invalid American odds: cannot be 0")

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.6667.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}
	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
// 2.50 -> +150, 1.6667 -> -150.
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0, got %v", decimal)
	}
	if decimal >= 2.0 {
		return int((decimal - 1.0) * 100.0), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedProbability converts American odds to the bookmaker's implied
// win probability (vig included).
func ImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// ProbabilityToDecimal converts a probability to fair decimal odds.
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("invalid probability: must be between 0 and 1, got %v", probability)
	}
	return 1.0 / probability, nil
}

// ProbabilityToAmerican converts a probability to fair American odds.
func ProbabilityToAmerican(probability float64) (int, error) {
	decimal, err := ProbabilityToDecimal(probability)
	if err != nil {
		return 0, err
	}
	return DecimalToAmerican(decimal)
}
