package repository

import (
	"context"
	"time"

	"VaderBoot/internal/domain/models"
)

// MarketDataProvider is the source of historical and snapshot fundamentals.
// Every query is independent; a failure of one must not affect the others.
type MarketDataProvider interface {
	Name() string
	DailyCloses(ctx context.Context, symbol string, days int) ([]models.PricePoint, error)
	AnnualFinancials(ctx context.Context, symbol string) ([]models.FinancialPeriod, error)
	QuarterlyFinancials(ctx context.Context, symbol string) ([]models.FinancialPeriod, error)
	CashFlows(ctx context.Context, symbol string) ([]models.CashFlowPeriod, error)
	CompanyInfo(ctx context.Context, symbol string) (models.CompanyInfo, error)
}

// Notifier delivers a rendered evaluation to a channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n models.Notification) error
}

type Metrics interface {
	RecordSignal(outcome models.Outcome, probability float64)
	RecordMetricUnavailable(metric string)
	RecordProviderQuery(query string, d time.Duration, err error)
	RecordNotification(channel string, err error)
	RecordLatency(op string, seconds float64)
}
