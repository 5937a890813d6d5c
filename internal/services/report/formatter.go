// Package report renders evaluations into chat messages.
package report

import (
	"fmt"
	"strings"

	"VaderBoot/internal/domain/models"
	"VaderBoot/internal/services/scoring"
)

const notAvailable = "N/A"

// Formatter renders an Evaluation. It is pure; the timestamp comes from the signal.
type Formatter struct {
	threshold    float64
	highMargin   float64
	caveatBelow  float64
	serviceTitle string
}

func NewFormatter(p scoring.Policy) *Formatter {
	return &Formatter{
		threshold:    p.Threshold,
		highMargin:   p.HighConfidenceMargin,
		caveatBelow:  p.CaveatBelow,
		serviceTitle: "VADERBOOT-IA LIVE 24/7",
	}
}

// Format renders the headline, confidence tier, scores, fundamentals, sizing and recommendation.
func (f *Formatter) Format(e *models.Evaluation) string {
	var b strings.Builder
	sig := e.Signal
	a := e.Assessment
	fund := e.Fundamentals

	b.WriteString(fmt.Sprintf("🚀 %s\n\n", f.serviceTitle))
	b.WriteString(fmt.Sprintf("📈 %s %s @%s\n\n", strings.ToUpper(string(sig.Action)), sig.Ticker, sig.Close.StringFixed(2)))

	b.WriteString(fmt.Sprintf("🧠 Confidence: %.1f%% %s\n", a.Probability*100, f.Stars(a.Probability)))
	b.WriteString(fmt.Sprintf("📐 Technical: %.2f | Fundamental: %.2f\n", a.TechnicalScore, a.FundamentalScore))
	b.WriteString(fmt.Sprintf("💰 Fundamentals: P/E %s | ROE %s | D/E %s\n",
		number(fund.PE), percent(fund.ROE), number(fund.DebtToEquity)))
	b.WriteString(fmt.Sprintf("   Volatility %s | Revenue CAGR %s | Margin %s | FCF CAGR %s\n",
		percent(fund.Volatility), percent(fund.RevenueCAGR), points(fund.MarginTrend), percent(fund.FCFCAGR)))
	b.WriteString(fmt.Sprintf("📊 Kelly: %s (R:R %.1f)\n\n", e.Position.Allocation, e.Position.RewardRisk))

	b.WriteString(fmt.Sprintf("🎯 RECOMMENDATION: %s\n", recommendation(sig.Action, e.Decision)))
	if a.Probability < f.caveatBelow {
		b.WriteString(fmt.Sprintf("⚠️ Moderate confidence: probability below %.0f%%\n", f.caveatBelow*100))
	}
	b.WriteString(fmt.Sprintf("🕒 %s", sig.ReceivedAt.UTC().Format("2006-01-02 15:04 UTC")))

	return b.String()
}

// Stars bands the probability into three confidence tiers.
func (f *Formatter) Stars(probability float64) string {
	switch {
	case probability >= f.threshold+f.highMargin:
		return "⭐⭐⭐"
	case probability >= f.threshold:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

func recommendation(action models.Action, d models.Decision) string {
	switch d.Outcome {
	case models.OutcomeTrade:
		if action == models.ActionSell {
			return "🔴 SELL"
		}
		return "🟢 BUY"
	case models.OutcomeFiltered:
		return "⛔ FILTERED"
	default:
		return "🟡 WAIT"
	}
}

func number(m models.Metric) string {
	if !m.Available {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", m.Value)
}

func percent(m models.Metric) string {
	if !m.Available {
		return notAvailable
	}
	return fmt.Sprintf("%.1f%%", m.Value*100)
}

func points(m models.Metric) string {
	if !m.Available {
		return notAvailable
	}
	return fmt.Sprintf("%+.1fpp", m.Value)
}
