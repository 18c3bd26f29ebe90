package simulation

// ImpliedProbability converts decimal odds into the bookmaker's implied
// win probability.
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 {
		return 0
	}
	return 1 / odds
}

// ExpectedValue is the expected profit per unit staked given the bettor's
// own probability estimate. Positive values indicate a value bet.
func ExpectedValue(prob, odds float64) float64 {
	return prob*(odds-1) - (1 - prob)
}

// KellyStake returns the bankroll fraction the Kelly criterion assigns to a
// single quote, capped at maxFraction and floored at zero.
func KellyStake(prob, odds, maxFraction float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}
	f := (b*prob - (1 - prob)) / b
	if f < 0 {
		return 0
	}
	if f > maxFraction {
		return maxFraction
	}
	return f
}
