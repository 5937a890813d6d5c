package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
	"VaderBoot/internal/services/scoring"
	"VaderBoot/pkg/logger"
)

const (
	queryDailyCloses = "daily_closes"
	queryAnnual      = "annual_financials"
	queryQuarterly   = "quarterly_financials"
	queryCashFlows   = "cash_flows"
	queryCompanyInfo = "company_info"
)

// FundamentalAnalyzer builds a FundamentalProfile from independent provider queries.
// A failed query only degrades the metrics derived from it.
type FundamentalAnalyzer struct {
	provider    domrepo.MarketDataProvider
	metrics     domrepo.Metrics
	l           *logger.Logger
	historyDays int
	timeout     time.Duration
}

// AnalyzerOption configures FundamentalAnalyzer.
type AnalyzerOption func(*FundamentalAnalyzer)

func NewFundamentalAnalyzer(provider domrepo.MarketDataProvider, opts ...AnalyzerOption) *FundamentalAnalyzer {
	a := &FundamentalAnalyzer{
		provider:    provider,
		metrics:     nopMetrics{},
		l:           logger.Nop(),
		historyDays: 365,
		timeout:     15 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithHistoryDays sets how many days of closes feed the volatility metric.
func WithHistoryDays(days int) AnalyzerOption {
	return func(a *FundamentalAnalyzer) {
		if days >= 2 {
			a.historyDays = days
		}
	}
}

// WithAnalysisTimeout bounds the whole fan-out.
func WithAnalysisTimeout(d time.Duration) AnalyzerOption {
	return func(a *FundamentalAnalyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithAnalyzerMetrics(m domrepo.Metrics) AnalyzerOption {
	return func(a *FundamentalAnalyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

func WithAnalyzerLogger(l *logger.Logger) AnalyzerOption {
	return func(a *FundamentalAnalyzer) {
		if l != nil {
			a.l = l
		}
	}
}

type queryResult struct {
	name string
	val  interface{}
	err  error
}

// Analyze never fails. Under total provider failure every metric is unavailable and the score is 0.
func (a *FundamentalAnalyzer) Analyze(ctx context.Context, ticker string) models.FundamentalProfile {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	queries := map[string]func(context.Context) (interface{}, error){
		queryDailyCloses: func(ctx context.Context) (interface{}, error) {
			return a.provider.DailyCloses(ctx, ticker, a.historyDays)
		},
		queryAnnual: func(ctx context.Context) (interface{}, error) {
			return a.provider.AnnualFinancials(ctx, ticker)
		},
		queryQuarterly: func(ctx context.Context) (interface{}, error) {
			return a.provider.QuarterlyFinancials(ctx, ticker)
		},
		queryCashFlows: func(ctx context.Context) (interface{}, error) {
			return a.provider.CashFlows(ctx, ticker)
		},
		queryCompanyInfo: func(ctx context.Context) (interface{}, error) {
			return a.provider.CompanyInfo(ctx, ticker)
		},
	}

	ch := make(chan queryResult, len(queries))
	var wg sync.WaitGroup
	for name, q := range queries {
		wg.Add(1)
		go func(name string, q func(context.Context) (interface{}, error)) {
			defer wg.Done()
			ch <- a.run(ctx, name, q)
		}(name, q)
	}
	go func() { wg.Wait(); close(ch) }()

	results := make(map[string]queryResult, len(queries))
	for r := range ch {
		results[r.name] = r
	}

	p := a.profile(ticker, results)
	scoring.ScoreProfile(&p)

	missing := p.Unavailable()
	names := make([]string, 0, len(missing))
	for name := range missing {
		a.metrics.RecordMetricUnavailable(name)
		names = append(names, name)
	}
	sort.Strings(names)

	a.metrics.RecordLatency("fundamental_analysis", time.Since(start).Seconds())
	a.l.Debug("fundamentals analyzed",
		logger.String("ticker", ticker),
		logger.Float64("points", p.Points),
		logger.Float64("fundamental_score", p.Score),
		logger.Strings("unavailable", names),
		logger.Duration("elapsed", time.Since(start)),
	)
	return p
}

// run executes one query, converting a panic into an error so the fan-out always completes.
func (a *FundamentalAnalyzer) run(ctx context.Context, name string, q func(context.Context) (interface{}, error)) (res queryResult) {
	start := time.Now()
	res.name = name
	defer func() {
		if r := recover(); r != nil {
			res.val, res.err = nil, fmt.Errorf("panic: %v", r)
		}
		a.metrics.RecordProviderQuery(name, time.Since(start), res.err)
		if res.err != nil {
			a.l.Warn("market data query failed",
				logger.String("provider", a.provider.Name()),
				logger.String("query", name),
				logger.Error(res.err),
			)
		}
	}()
	res.val, res.err = q(ctx)
	return res
}

func (a *FundamentalAnalyzer) profile(ticker string, results map[string]queryResult) models.FundamentalProfile {
	p := models.FundamentalProfile{Ticker: ticker}

	if closes, err := resultAs[[]models.PricePoint](results[queryDailyCloses]); err != nil {
		p.Volatility = models.Unavailable(err.Error())
	} else {
		p.Volatility = scoring.AnnualizedVolatility(closes)
	}

	if annual, err := resultAs[[]models.FinancialPeriod](results[queryAnnual]); err != nil {
		p.RevenueCAGR = models.Unavailable(err.Error())
	} else {
		p.RevenueCAGR = scoring.CAGR(scoring.RevenueSeries(annual))
	}

	if quarterly, err := resultAs[[]models.FinancialPeriod](results[queryQuarterly]); err != nil {
		p.MarginTrend = models.Unavailable(err.Error())
	} else {
		p.MarginTrend = scoring.MarginTrend(quarterly)
	}

	if flows, err := resultAs[[]models.CashFlowPeriod](results[queryCashFlows]); err != nil {
		p.FCFCAGR = models.Unavailable(err.Error())
	} else {
		p.FCFCAGR = scoring.CAGR(scoring.FreeCashFlows(flows))
	}

	if info, err := resultAs[models.CompanyInfo](results[queryCompanyInfo]); err != nil {
		reason := err.Error()
		p.PE = models.Unavailable(reason)
		p.ROE = models.Unavailable(reason)
		p.DebtToEquity = models.Unavailable(reason)
	} else {
		p.PE = scoring.PERatio(info)
		p.ROE = scoring.OptionalMetric(info.ReturnOnEquity, "return on equity")
		p.DebtToEquity = scoring.OptionalMetric(info.DebtToEquity, "debt to equity")
	}

	return p
}

func resultAs[T any](r queryResult) (T, error) {
	var zero T
	if r.name == "" {
		return zero, fmt.Errorf("query did not complete")
	}
	if r.err != nil {
		return zero, fmt.Errorf("%s failed: %w", r.name, r.err)
	}
	v, ok := r.val.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned %T", r.name, r.val)
	}
	return v, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordSignal(models.Outcome, float64) {}
func (nopMetrics) RecordMetricUnavailable(string) {}
func (nopMetrics) RecordProviderQuery(string, time.Duration, error) {}
func (nopMetrics) RecordNotification(string, error) {}
func (nopMetrics) RecordLatency(string, float64) {}
