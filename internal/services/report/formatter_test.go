package report

import (
	"strings"
	"testing"
	"time"

	"VaderBoot/internal/domain/models"
	"VaderBoot/internal/services/scoring"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluation(t *testing.T, action models.Action, probability float64, outcome models.Outcome) *models.Evaluation {
	t.Helper()
	sig, err := models.NewSignal("aapl", action, decimal.RequireFromString("189.5"),
		models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2},
		time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return &models.Evaluation{
		SignalID: sig.ID,
		Signal:   sig,
		Fundamentals: models.FundamentalProfile{
			Ticker:       sig.Ticker,
			PE:           models.Known(12.34),
			ROE:          models.Known(0.25),
			DebtToEquity: models.Unavailable("debt to equity not reported"),
			Volatility:   models.Known(0.18),
			RevenueCAGR:  models.Unavailable("need at least 2 periods, have 1"),
			MarginTrend:  models.Known(3.2),
			FCFCAGR:      models.Known(0.05),
		},
		Assessment: models.CompositeAssessment{TechnicalScore: 1, FundamentalScore: 0.5, Combined: 0.85, Probability: probability},
		Position:   models.NewPositionRecommendation(2.8, 0.667, false),
		Decision:   models.Decision{Outcome: outcome},
	}
}

func TestFormatTradeReport(t *testing.T) {
	f := NewFormatter(scoring.DefaultPolicy())
	msg := f.Format(evaluation(t, models.ActionBuy, 0.755, models.OutcomeTrade))

	assert.True(t, strings.HasPrefix(msg, "🚀 VADERBOOT-IA LIVE 24/7"))
	assert.Contains(t, msg, "📈 BUY AAPL @189.50")
	assert.Contains(t, msg, "75.5% ⭐⭐⭐")
	assert.Contains(t, msg, "P/E 12.3 | ROE 25.0% | D/E N/A")
	assert.Contains(t, msg, "Revenue CAGR N/A")
	assert.Contains(t, msg, "Margin +3.2pp")
	assert.Contains(t, msg, "Kelly: 66.7% capital (R:R 2.8)")
	assert.Contains(t, msg, "RECOMMENDATION: 🟢 BUY")
	assert.NotContains(t, msg, "Moderate confidence")
	assert.Contains(t, msg, "2025-03-14 15:30 UTC")
}

func TestFormatSellAndCaveat(t *testing.T) {
	f := NewFormatter(scoring.DefaultPolicy())
	msg := f.Format(evaluation(t, models.ActionSell, 0.62, models.OutcomeTrade))

	assert.Contains(t, msg, "📈 SELL AAPL")
	assert.Contains(t, msg, "62.0% ⭐⭐\n")
	assert.Contains(t, msg, "🔴 SELL")
	assert.Contains(t, msg, "Moderate confidence: probability below 65%")
}

func TestFormatSkip(t *testing.T) {
	f := NewFormatter(scoring.DefaultPolicy())
	msg := f.Format(evaluation(t, models.ActionBuy, 0.55, models.OutcomeSkip))

	assert.Contains(t, msg, "55.0% ⭐\n")
	assert.Contains(t, msg, "🟡 WAIT")
}

func TestFormatIsDeterministic(t *testing.T) {
	f := NewFormatter(scoring.DefaultPolicy())
	e := evaluation(t, models.ActionBuy, 0.7, models.OutcomeTrade)
	assert.Equal(t, f.Format(e), f.Format(e))
}

func TestStarsFollowPolicy(t *testing.T) {
	p := scoring.DefaultPolicy()
	p.Threshold = 0.7
	f := NewFormatter(p)

	assert.Equal(t, "⭐⭐⭐", f.Stars(0.8))
	assert.Equal(t, "⭐⭐", f.Stars(0.7))
	assert.Equal(t, "⭐", f.Stars(0.69))
}
