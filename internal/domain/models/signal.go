package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the side requested by the alert.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAction normalizes s into a known Action.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionBuy, "":
		return ActionBuy, nil
	case ActionSell:
		return ActionSell, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// Signal is one inbound alert. It is immutable once built by NewSignal.
type Signal struct {
	ID         string
	Ticker     string
	Action     Action
	Close      decimal.Decimal
	RSI        float64
	MACD       float64
	RVOL       float64
	ReceivedAt time.Time
}

// TechnicalReadings groups the three oscillator values of an alert.
type TechnicalReadings struct {
	RSI  float64
	MACD float64
	RVOL float64
}

var ErrEmptyTicker = errors.New("ticker is required")

// NewSignal validates the alert fields and assigns a fresh signal id.
func NewSignal(ticker string, action Action, closePrice decimal.Decimal, tech TechnicalReadings, receivedAt time.Time) (Signal, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Signal{}, ErrEmptyTicker
	}
	a, err := ParseAction(string(action))
	if err != nil {
		return Signal{}, err
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	return Signal{
		ID:         uuid.NewString(),
		Ticker:     ticker,
		Action:     a,
		Close:      closePrice,
		RSI:        tech.RSI,
		MACD:       tech.MACD,
		RVOL:       tech.RVOL,
		ReceivedAt: receivedAt.UTC(),
	}, nil
}
