package odds

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds.
// American +150 → Decimal 2.50, American -150 → Decimal 1.67.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal < 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be >= 1.0")
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// AmericanToImpliedProbability converts American odds to implied probability.
// -110 → 0.524, +150 → 0.40.
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// ProfitOnWin returns the profit (excluding the returned stake) for a winning
// wager of the given size at the given American odds.
// $100 at +150 → $150 profit, $110 at -110 → $100 profit.
func ProfitOnWin(stake float64, american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}
	if stake <= 0 {
		return 0, fmt.Errorf("invalid stake: must be > 0")
	}

	if american > 0 {
		return stake * float64(american) / 100.0, nil
	}
	return stake * 100.0 / float64(-american), nil
}
