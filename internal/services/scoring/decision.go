package scoring

import (
	"fmt"

	"VaderBoot/internal/domain/models"
)

// Decide returns filtered when the sizer rejected the position, otherwise trade or skip by threshold.
// The filter is checked first.
func Decide(probability float64, pos models.PositionRecommendation, p Policy) models.Decision {
	if pos.Rejected {
		return models.Decision{
			Outcome: models.OutcomeFiltered,
			Reason:  fmt.Sprintf("kelly fraction %.4f below minimum %.4f", pos.KellyFraction, p.MinKellyFraction),
		}
	}
	if probability >= p.Threshold {
		return models.Decision{
			Outcome: models.OutcomeTrade,
			Reason:  fmt.Sprintf("probability %.3f meets threshold %.2f", probability, p.Threshold),
		}
	}
	return models.Decision{
		Outcome: models.OutcomeSkip,
		Reason:  fmt.Sprintf("probability %.3f below threshold %.2f", probability, p.Threshold),
	}
}
