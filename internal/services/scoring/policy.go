// Package scoring holds the pure scoring and decision rules applied to a signal.
package scoring

import "fmt"

// Policy is the tunable part of the engine. It is passed explicitly so tests can vary it.
type Policy struct {
	// Threshold is the minimum probability for a trade.
	Threshold float64
	// RewardRisk is the payoff ratio b of the Kelly formula.
	RewardRisk float64
	// MinKellyFraction rejects signals whose Kelly fraction is below it.
	MinKellyFraction float64
	// HighConfidenceMargin above Threshold gives the top confidence tier.
	HighConfidenceMargin float64
	// CaveatBelow adds a confidence warning to reports under this probability.
	CaveatBelow float64
}

// DefaultPolicy returns the tuned defaults.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:            0.60,
		RewardRisk:           2.8,
		MinKellyFraction:     0.01,
		HighConfidenceMargin: 0.10,
		CaveatBelow:          0.65,
	}
}

// Validate rejects policies the formulas cannot use.
func (p Policy) Validate() error {
	if p.Threshold <= 0 || p.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0,1), got %v", p.Threshold)
	}
	if p.RewardRisk <= 0 {
		return fmt.Errorf("reward:risk must be positive, got %v", p.RewardRisk)
	}
	if p.MinKellyFraction < 0 {
		return fmt.Errorf("min kelly fraction cannot be negative, got %v", p.MinKellyFraction)
	}
	return nil
}
