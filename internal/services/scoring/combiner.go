package scoring

import "VaderBoot/internal/domain/models"

const (
	technicalWeight   = 0.7
	fundamentalWeight = 0.3
	baseProbability   = 0.5
	probabilitySpan   = 0.3
)

// Combine blends the scores into a probability confined to [0.5, 0.8].
func Combine(technical, fundamental float64) (models.CompositeAssessment, error) {
	technical = clamp01(technical)
	fundamental = clamp01(fundamental)
	combined := technical*technicalWeight + fundamental*fundamentalWeight
	probability := baseProbability + combined*probabilitySpan
	return models.NewCompositeAssessment(technical, fundamental, combined, probability)
}
