package models

import (
	"fmt"
	"math"
	"time"
)

// CompositeAssessment blends technical and fundamental scores into a probability.
type CompositeAssessment struct {
	TechnicalScore   float64 `json:"technical_score"`
	FundamentalScore float64 `json:"fundamental_score"`
	Combined         float64 `json:"combined"`
	Probability      float64 `json:"probability"`
}

// NewCompositeAssessment rejects scores outside [0,1].
func NewCompositeAssessment(technical, fundamental, combined, probability float64) (CompositeAssessment, error) {
	for name, v := range map[string]float64{
		"technical_score":   technical,
		"fundamental_score": fundamental,
		"combined":          combined,
		"probability":       probability,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return CompositeAssessment{}, fmt.Errorf("%s out of range: %v", name, v)
		}
	}
	return CompositeAssessment{
		TechnicalScore:   technical,
		FundamentalScore: fundamental,
		Combined:         combined,
		Probability:      probability,
	}, nil
}

// PositionRecommendation is the Kelly sizing of a probability.
type PositionRecommendation struct {
	RewardRisk    float64 `json:"reward_risk"`
	KellyFraction float64 `json:"kelly_fraction"`
	Allocation    string  `json:"allocation"`
	Rejected      bool    `json:"rejected"`
}

// NewPositionRecommendation floors negative or NaN fractions to zero.
func NewPositionRecommendation(rewardRisk, fraction float64, rejected bool) PositionRecommendation {
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	return PositionRecommendation{
		RewardRisk:    rewardRisk,
		KellyFraction: fraction,
		Allocation:    fmt.Sprintf("%.1f%% capital", fraction*100),
		Rejected:      rejected,
	}
}

// Outcome is the terminal state of a signal.
type Outcome string

const (
	OutcomeTrade    Outcome = "trade"
	OutcomeSkip     Outcome = "skip"
	OutcomeFiltered Outcome = "filtered"
)

// Decision is the verdict on a signal and why it was reached.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason"`
}

// Filtered reports whether the signal was rejected by the sizing filter.
func (d Decision) Filtered() bool { return d.Outcome == OutcomeFiltered }

// Evaluation is everything derived from one Signal.
type Evaluation struct {
	SignalID     string                 `json:"signal_id"`
	Signal       Signal                 `json:"-"`
	Fundamentals FundamentalProfile     `json:"fundamentals"`
	Assessment   CompositeAssessment    `json:"assessment"`
	Position     PositionRecommendation `json:"position"`
	Decision     Decision               `json:"decision"`
	EvaluatedAt  time.Time              `json:"evaluated_at"`
	Duration     time.Duration          `json:"-"`
}

// Notification is what the engine hands to the delivery channels.
type Notification struct {
	Text       string
	Evaluation *Evaluation
}
