package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Metric is a single fundamental measurement that may be missing.
// Unavailable metrics carry the reason and never contribute points.
type Metric struct {
	Value     float64
	Available bool
	Reason    string
}

// Known returns an available metric. NaN and infinite values are reported unavailable.
func Known(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable("non-finite value")
	}
	return Metric{Value: v, Available: true}
}

// Unavailable returns a missing metric with the reason it could not be computed.
func Unavailable(reason string) Metric {
	return Metric{Reason: reason}
}

// Unavailablef is Unavailable with formatting.
func Unavailablef(format string, a ...interface{}) Metric {
	return Unavailable(fmt.Sprintf(format, a...))
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Available {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// FundamentalProfile is recomputed for every signal; it is never cached.
type FundamentalProfile struct {
	Ticker       string `json:"ticker"`
	PE           Metric `json:"pe_ratio"`
	ROE          Metric `json:"roe"`
	DebtToEquity Metric `json:"debt_equity"`
	Volatility   Metric `json:"volatility"`
	RevenueCAGR  Metric `json:"revenue_cagr"`
	MarginTrend  Metric `json:"margin_trend"`
	FCFCAGR      Metric `json:"fcf_cagr"`

	Points float64 `json:"points"`
	Score  float64 `json:"fundamental_score"`
}

// Unavailable lists the names of metrics that could not be computed.
func (p FundamentalProfile) Unavailable() map[string]string {
	out := map[string]string{}
	for name, m := range p.metrics() {
		if !m.Available {
			out[name] = m.Reason
		}
	}
	return out
}

func (p FundamentalProfile) metrics() map[string]Metric {
	return map[string]Metric{
		"pe_ratio":     p.PE,
		"roe":          p.ROE,
		"debt_equity":  p.DebtToEquity,
		"volatility":   p.Volatility,
		"revenue_cagr": p.RevenueCAGR,
		"margin_trend": p.MarginTrend,
		"fcf_cagr":     p.FCFCAGR,
	}
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// FinancialPeriod is one income statement row (annual or quarterly).
type FinancialPeriod struct {
	EndDate      time.Time
	TotalRevenue *float64
	NetIncome    *float64
}

// CashFlowPeriod is one cash-flow statement row.
// FreeCashFlow, when set by the provider, takes precedence over OCF and capex.
type CashFlowPeriod struct {
	EndDate             time.Time
	OperatingCashFlow   *float64
	CapitalExpenditures *float64
	FreeCashFlow        *float64
}

// CompanyInfo is the valuation/profitability snapshot.
// DebtToEquity is in percent (150 means 1.5x), as most providers report it.
type CompanyInfo struct {
	ForwardPE      *float64
	TrailingPE     *float64
	ReturnOnEquity *float64
	DebtToEquity   *float64
}

// Float returns a pointer to v, for building provider records.
func Float(v float64) *float64 { return &v }
