package scoring

import (
	"math"

	"VaderBoot/internal/domain/models"
)

// KellyFraction is f* = (p(b+1) - 1) / b, floored at zero.
func KellyFraction(probability, rewardRisk float64) float64 {
	if rewardRisk <= 0 || math.IsNaN(probability) {
		return 0
	}
	f := (probability*(rewardRisk+1) - 1) / rewardRisk
	if f < 0 {
		return 0
	}
	return f
}

// SizePosition applies the Kelly rule and marks the position rejected below the policy minimum.
func SizePosition(probability float64, p Policy) models.PositionRecommendation {
	f := KellyFraction(probability, p.RewardRisk)
	return models.NewPositionRecommendation(p.RewardRisk, f, f < p.MinKellyFraction)
}
