package notify

import (
	"time"

	"VaderBoot/internal/domain/models"
)

// Event is the machine-readable form of an evaluation published to brokers.
type Event struct {
	SignalID         string                    `json:"signal_id"`
	Ticker           string                    `json:"ticker"`
	Action           models.Action             `json:"action"`
	Close            string                    `json:"close"`
	TechnicalScore   float64                   `json:"technical_score"`
	FundamentalScore float64                   `json:"fundamental_score"`
	Probability      float64                   `json:"probability"`
	KellyFraction    float64                   `json:"kelly_fraction"`
	Allocation       string                    `json:"allocation"`
	Outcome          models.Outcome            `json:"outcome"`
	Reason           string                    `json:"reason"`
	Fundamentals     models.FundamentalProfile `json:"fundamentals"`
	ReceivedAt       time.Time                 `json:"received_at"`
	EvaluatedAt      time.Time                 `json:"evaluated_at"`
	Text             string                    `json:"text"`
}

func NewEvent(n models.Notification) Event {
	e := n.Evaluation
	if e == nil {
		return Event{Text: n.Text}
	}
	return Event{
		SignalID:         e.SignalID,
		Ticker:           e.Signal.Ticker,
		Action:           e.Signal.Action,
		Close:            e.Signal.Close.String(),
		TechnicalScore:   e.Assessment.TechnicalScore,
		FundamentalScore: e.Assessment.FundamentalScore,
		Probability:      e.Assessment.Probability,
		KellyFraction:    e.Position.KellyFraction,
		Allocation:       e.Position.Allocation,
		Outcome:          e.Decision.Outcome,
		Reason:           e.Decision.Reason,
		Fundamentals:     e.Fundamentals,
		ReceivedAt:       e.Signal.ReceivedAt,
		EvaluatedAt:      e.EvaluatedAt,
		Text:             n.Text,
	}
}
