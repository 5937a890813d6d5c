package usecase

import (
	"context"
	"testing"

	"VaderBoot/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeAllMetricsAvailable(t *testing.T) {
	a := NewFundamentalAnalyzer(healthyProvider())
	p := a.Analyze(context.Background(), "AAPL")

	assert.Empty(t, p.Unavailable())
	assert.Equal(t, "AAPL", p.Ticker)
	assert.Equal(t, 11.0, p.Points)
	assert.Equal(t, 1.0, p.Score)
	assert.InDelta(t, 12.0, p.PE.Value, 1e-9)
	assert.InDelta(t, 10.0, p.MarginTrend.Value, 1e-9)
	assert.InDelta(t, 1.0, p.FCFCAGR.Value, 1e-9)
}

func TestAnalyzeTotalFailureDegradesToZero(t *testing.T) {
	m := newRecordingMetrics()
	a := NewFundamentalAnalyzer(failingProvider(), WithAnalyzerMetrics(m))

	p := a.Analyze(context.Background(), "ZZZZ")

	assert.Equal(t, 0.0, p.Score)
	assert.Equal(t, 0.0, p.Points)
	missing := p.Unavailable()
	assert.Len(t, missing, 7)
	assert.Contains(t, missing["revenue_cagr"], "provider down")
	assert.Equal(t, 1, m.unavailable["pe_ratio"])
	assert.Equal(t, 1, m.queryErrors[queryCompanyInfo])
}

func TestAnalyzeIsolatesFailedQuery(t *testing.T) {
	prov := healthyProvider()
	prov.fail = map[string]error{queryCashFlows: errProviderDown}
	p := NewFundamentalAnalyzer(prov).Analyze(context.Background(), "AAPL")

	missing := p.Unavailable()
	require.Len(t, missing, 1)
	assert.Contains(t, missing, "fcf_cagr")
	assert.Equal(t, 9.0, p.Points)
	assert.Equal(t, 0.9, p.Score)
}

func TestAnalyzeRecoversFromPanic(t *testing.T) {
	prov := healthyProvider()
	prov.panicOn = queryCompanyInfo

	var p models.FundamentalProfile
	require.NotPanics(t, func() {
		p = NewFundamentalAnalyzer(prov).Analyze(context.Background(), "AAPL")
	})
	assert.False(t, p.PE.Available)
	assert.False(t, p.ROE.Available)
	assert.False(t, p.DebtToEquity.Available)
	assert.Contains(t, p.PE.Reason, "panic")
	assert.True(t, p.Volatility.Available)
	assert.Equal(t, 7.0, p.Points)
}

func TestAnalyzeShortHistory(t *testing.T) {
	prov := healthyProvider()
	prov.annual = prov.annual[:1]
	prov.closes = prov.closes[:2]
	p := NewFundamentalAnalyzer(prov).Analyze(context.Background(), "AAPL")

	assert.False(t, p.RevenueCAGR.Available)
	assert.False(t, p.Volatility.Available)
	assert.GreaterOrEqual(t, p.Score, 0.0)
	assert.LessOrEqual(t, p.Score, 1.0)
}
