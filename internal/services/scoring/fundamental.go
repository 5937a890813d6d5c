package scoring

import "VaderBoot/internal/domain/models"

// MaxFundamentalPoints normalizes accumulated points into a score.
const MaxFundamentalPoints = 10.0

// VolatilityPoints: under 20% annualized +1, up to 35% +0.5.
func VolatilityPoints(m models.Metric) float64 {
	switch {
	case !m.Available:
		return 0
	case m.Value < 0.20:
		return 1
	case m.Value <= 0.35:
		return 0.5
	}
	return 0
}

// RevenueGrowthPoints: CAGR above 20% +2, 10-20% +1, 0-10% +0.5.
func RevenueGrowthPoints(m models.Metric) float64 {
	switch {
	case !m.Available:
		return 0
	case m.Value > 0.20:
		return 2
	case m.Value >= 0.10:
		return 1
	case m.Value >= 0:
		return 0.5
	}
	return 0
}

// MarginTrendPoints: net margin up more than 5pp +2, up at all +1.
func MarginTrendPoints(m models.Metric) float64 {
	switch {
	case !m.Available:
		return 0
	case m.Value > 5:
		return 2
	case m.Value > 0:
		return 1
	}
	return 0
}

// FCFGrowthPoints: FCF CAGR above 15% +2, positive +1.
func FCFGrowthPoints(m models.Metric) float64 {
	switch {
	case !m.Available:
		return 0
	case m.Value > 0.15:
		return 2
	case m.Value > 0:
		return 1
	}
	return 0
}

// PEPoints: P/E under 15 +2, under 25 +1. Non-positive P/E (losses) earns nothing.
func PEPoints(m models.Metric) float64 {
	switch {
	case !m.Available || m.Value <= 0:
		return 0
	case m.Value < 15:
		return 2
	case m.Value < 25:
		return 1
	}
	return 0
}

// ROEPoints: ROE above 20% +1, above 15% +0.5.
func ROEPoints(m models.Metric) float64 {
	switch {
	case !m.Available:
		return 0
	case m.Value > 0.20:
		return 1
	case m.Value > 0.15:
		return 0.5
	}
	return 0
}

// DebtToEquityPoints: D/E (percent) under 50 +1, under 100 +0.5. Negative equity earns nothing.
func DebtToEquityPoints(m models.Metric) float64 {
	switch {
	case !m.Available || m.Value < 0:
		return 0
	case m.Value < 50:
		return 1
	case m.Value < 100:
		return 0.5
	}
	return 0
}

// ScoreProfile accumulates points over the profile's metrics and sets Points and Score.
func ScoreProfile(p *models.FundamentalProfile) {
	points := VolatilityPoints(p.Volatility) +
		RevenueGrowthPoints(p.RevenueCAGR) +
		MarginTrendPoints(p.MarginTrend) +
		FCFGrowthPoints(p.FCFCAGR) +
		PEPoints(p.PE) +
		ROEPoints(p.ROE) +
		DebtToEquityPoints(p.DebtToEquity)
	p.Points = points
	p.Score = clamp01(points / MaxFundamentalPoints)
}
