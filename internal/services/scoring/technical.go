package scoring

import "math"

// TechnicalScore normalizes RSI, MACD and relative volume into [0,1].
// RSI is scaled by 70 and RVOL by 1.5; a positive MACD adds a full point.
// The mean of the three is clamped to [0,1].
func TechnicalScore(rsi, macd, rvol float64) float64 {
	macdPoint := 0.0
	if macd > 0 {
		macdPoint = 1
	}
	raw := (rsi/70 + rvol/1.5 + macdPoint) / 3
	return clamp01(raw)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
