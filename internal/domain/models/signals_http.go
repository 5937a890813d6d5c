package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WebhookRequest is the alert body posted by the charting platform.
// The oscillator readings arrive as the platform's plot exports.
type WebhookRequest struct {
	Ticker string           `json:"ticker" validate:"required"`
	Action string           `json:"action" default:"buy" validate:"oneof=buy sell"`
	Close  *decimal.Decimal `json:"close"`
	RSI    *float64         `json:"plot_0" validate:"required"`
	MACD   *float64         `json:"plot_1" validate:"required"`
	RVOL   *float64         `json:"plot_2" validate:"required"`
}

// Normalize trims the ticker and lowercases the action before validation.
func (r *WebhookRequest) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Action == "" {
		r.Action = string(ActionBuy)
	}
}

// Readings returns the technical readings. Call only after validation.
func (r *WebhookRequest) Readings() TechnicalReadings {
	return TechnicalReadings{RSI: *r.RSI, MACD: *r.MACD, RVOL: *r.RVOL}
}

// ClosePrice returns the close price, zero when absent.
func (r *WebhookRequest) ClosePrice() decimal.Decimal {
	if r.Close == nil {
		return decimal.Zero
	}
	return *r.Close
}

// WebhookResponse summarizes a processed or filtered signal.
type WebhookResponse struct {
	SignalID         string   `json:"signal_id"`
	Status           string   `json:"status"`
	Ticker           string   `json:"ticker"`
	Action           string   `json:"action"`
	Probability      float64  `json:"probability"`
	TechnicalScore   float64  `json:"technical_score"`
	FundamentalScore float64  `json:"fundamental_score"`
	KellyFraction    float64  `json:"kelly_fraction"`
	Decision         *Outcome `json:"decision,omitempty"`
	Reason           string   `json:"reason"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Webhook   string `json:"webhook"`
	Timestamp string `json:"timestamp"`
}
