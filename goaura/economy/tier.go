package economy

// tierMultipliers maps subscription tier levels to reward multipliers.
// Every reward path goes through TierMultiplier so the scaling can never
// diverge between calculators.
var tierMultipliers = map[int]float64{
	1: 1.0,
	2: 1.5,
	3: 2.0,
	4: 3.0,
	5: 5.0,
}

// TierMultiplier returns the reward multiplier for a tier level. Unknown
// or missing tiers fall back to the base multiplier.
func TierMultiplier(tier int) float64 {
	if m, ok := tierMultipliers[tier]; ok {
		return m
	}
	return 1.0
}
