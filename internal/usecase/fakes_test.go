package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"VaderBoot/internal/domain/models"
)

var errProviderDown = errors.New("provider down")

type fakeProvider struct {
	closes    []models.PricePoint
	annual    []models.FinancialPeriod
	quarterly []models.FinancialPeriod
	flows     []models.CashFlowPeriod
	info      models.CompanyInfo
	fail      map[string]error
	panicOn   string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) check(query string) error {
	if f.panicOn == query {
		panic("boom")
	}
	return f.fail[query]
}

func (f *fakeProvider) DailyCloses(_ context.Context, _ string, _ int) ([]models.PricePoint, error) {
	if err := f.check(queryDailyCloses); err != nil {
		return nil, err
	}
	return f.closes, nil
}

func (f *fakeProvider) AnnualFinancials(context.Context, string) ([]models.FinancialPeriod, error) {
	if err := f.check(queryAnnual); err != nil {
		return nil, err
	}
	return f.annual, nil
}

func (f *fakeProvider) QuarterlyFinancials(context.Context, string) ([]models.FinancialPeriod, error) {
	if err := f.check(queryQuarterly); err != nil {
		return nil, err
	}
	return f.quarterly, nil
}

func (f *fakeProvider) CashFlows(context.Context, string) ([]models.CashFlowPeriod, error) {
	if err := f.check(queryCashFlows); err != nil {
		return nil, err
	}
	return f.flows, nil
}

func (f *fakeProvider) CompanyInfo(context.Context, string) (models.CompanyInfo, error) {
	if err := f.check(queryCompanyInfo); err != nil {
		return models.CompanyInfo{}, err
	}
	return f.info, nil
}

func failingProvider() *fakeProvider {
	return &fakeProvider{fail: map[string]error{
		queryDailyCloses: errProviderDown,
		queryAnnual:      errProviderDown,
		queryQuarterly:   errProviderDown,
		queryCashFlows:   errProviderDown,
		queryCompanyInfo: errProviderDown,
	}}
}

func date(year, month int) time.Time {
	return time.Date(year, time.Month(month), 28, 0, 0, 0, 0, time.UTC)
}

// healthyProvider scores every metric in its top band: 11 points.
func healthyProvider() *fakeProvider {
	closes := make([]models.PricePoint, 0, 30)
	price := 100.0
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			price *= 1.002
		} else {
			price *= 0.999
		}
		closes = append(closes, models.PricePoint{Date: date(2025, 1).AddDate(0, 0, i), Close: price})
	}
	return &fakeProvider{
		closes: closes,
		annual: []models.FinancialPeriod{
			{EndDate: date(2022, 12), TotalRevenue: models.Float(100)},
			{EndDate: date(2023, 12), TotalRevenue: models.Float(130)},
			{EndDate: date(2024, 12), TotalRevenue: models.Float(170)},
		},
		quarterly: []models.FinancialPeriod{
			{EndDate: date(2024, 3), TotalRevenue: models.Float(40), NetIncome: models.Float(4)},
			{EndDate: date(2024, 12), TotalRevenue: models.Float(50), NetIncome: models.Float(10)},
		},
		flows: []models.CashFlowPeriod{
			{EndDate: date(2023, 12), FreeCashFlow: models.Float(10)},
			{EndDate: date(2024, 12), FreeCashFlow: models.Float(20)},
		},
		info: models.CompanyInfo{
			ForwardPE:      models.Float(12),
			ReturnOnEquity: models.Float(0.3),
			DebtToEquity:   models.Float(30),
		},
	}
}

type recordingMetrics struct {
	mu          sync.Mutex
	outcomes    []models.Outcome
	unavailable map[string]int
	queryErrors map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{unavailable: map[string]int{}, queryErrors: map[string]int{}}
}

func (m *recordingMetrics) RecordSignal(o models.Outcome, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, o)
}

func (m *recordingMetrics) RecordMetricUnavailable(metric string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable[metric]++
}

func (m *recordingMetrics) RecordProviderQuery(query string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.queryErrors[query]++
	}
}

func (m *recordingMetrics) RecordNotification(string, error) {}

func (m *recordingMetrics) RecordLatency(string, float64) {}

type fakeAnalyzer struct {
	score  float64
	ctxErr error
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, ticker string) models.FundamentalProfile {
	a.ctxErr = ctx.Err()
	return models.FundamentalProfile{Ticker: ticker, Score: a.score}
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []models.Notification
	err   error
	block bool
}

func (n *fakeNotifier) Name() string { return "fake" }

func (n *fakeNotifier) Notify(ctx context.Context, msg models.Notification) error {
	if n.block {
		<-ctx.Done()
		return ctx.Err()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}
