package marketdata

import (
	"context"
	"math"
	"strings"
	"time"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
)

// Fixture is the full data set served for one symbol.
type Fixture struct {
	Closes    []models.PricePoint
	Annual    []models.FinancialPeriod
	Quarterly []models.FinancialPeriod
	CashFlows []models.CashFlowPeriod
	Info      *models.CompanyInfo
}

// StaticProvider serves in-memory fixtures. Unknown symbols and missing
// sections fail with ErrNoData, as a real provider would.
type StaticProvider struct {
	fixtures map[string]Fixture
}

var _ domrepo.MarketDataProvider = (*StaticProvider)(nil)

func NewStaticProvider(fixtures map[string]Fixture) *StaticProvider {
	normalized := make(map[string]Fixture, len(fixtures))
	for symbol, f := range fixtures {
		normalized[strings.ToUpper(symbol)] = f
	}
	return &StaticProvider{fixtures: normalized}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) fixture(query, symbol string) (Fixture, error) {
	f, ok := p.fixtures[strings.ToUpper(symbol)]
	if !ok {
		return Fixture{}, &ProviderError{Provider: p.Name(), Query: query, Err: ErrNoData}
	}
	return f, nil
}

func (p *StaticProvider) DailyCloses(_ context.Context, symbol string, days int) ([]models.PricePoint, error) {
	f, err := p.fixture("daily_closes", symbol)
	if err != nil {
		return nil, err
	}
	if len(f.Closes) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Query: "daily_closes", Err: ErrNoData}
	}
	closes := f.Closes
	if days > 0 && len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return closes, nil
}

func (p *StaticProvider) AnnualFinancials(_ context.Context, symbol string) ([]models.FinancialPeriod, error) {
	f, err := p.fixture("annual_financials", symbol)
	if err != nil {
		return nil, err
	}
	return f.Annual, nil
}

func (p *StaticProvider) QuarterlyFinancials(_ context.Context, symbol string) ([]models.FinancialPeriod, error) {
	f, err := p.fixture("quarterly_financials", symbol)
	if err != nil {
		return nil, err
	}
	return f.Quarterly, nil
}

func (p *StaticProvider) CashFlows(_ context.Context, symbol string) ([]models.CashFlowPeriod, error) {
	f, err := p.fixture("cash_flows", symbol)
	if err != nil {
		return nil, err
	}
	return f.CashFlows, nil
}

func (p *StaticProvider) CompanyInfo(_ context.Context, symbol string) (models.CompanyInfo, error) {
	f, err := p.fixture("company_info", symbol)
	if err != nil {
		return models.CompanyInfo{}, err
	}
	if f.Info == nil {
		return models.CompanyInfo{}, &ProviderError{Provider: p.Name(), Query: "company_info", Err: ErrNoData}
	}
	return *f.Info, nil
}

// DemoFixtures is the offline data set used with provider.type static.
// DEMO is a steady compounder; FRAGILE is volatile, shrinking and leveraged.
func DemoFixtures(asOf time.Time) map[string]Fixture {
	asOf = asOf.UTC().Truncate(24 * time.Hour)
	return map[string]Fixture{
		"DEMO": {
			Closes:    syntheticCloses(asOf, 252, 100, 0.0004, 0.008),
			Annual:    annualSeries(asOf, []float64{80e9, 92e9, 104e9, 118e9}, []float64{12e9, 14e9, 17e9, 20e9}),
			Quarterly: quarterlySeries(asOf, []float64{27e9, 28e9, 30e9, 31e9}, []float64{3.9e9, 4.3e9, 5.0e9, 5.6e9}),
			CashFlows: cashFlowSeries(asOf, []float64{14e9, 16e9, 19e9, 22e9}, []float64{-3e9, -3.2e9, -3.5e9, -3.9e9}),
			Info: &models.CompanyInfo{
				ForwardPE:      models.Float(18.5),
				TrailingPE:     models.Float(21.0),
				ReturnOnEquity: models.Float(0.24),
				DebtToEquity:   models.Float(42),
			},
		},
		"FRAGILE": {
			Closes:    syntheticCloses(asOf, 252, 20, -0.001, 0.045),
			Annual:    annualSeries(asOf, []float64{5e9, 4.6e9, 4.1e9}, []float64{-0.2e9, -0.4e9, -0.7e9}),
			Quarterly: quarterlySeries(asOf, []float64{1.1e9, 1.05e9, 1.0e9}, []float64{-0.1e9, -0.15e9, -0.2e9}),
			CashFlows: cashFlowSeries(asOf, []float64{0.3e9, 0.1e9, -0.1e9}, []float64{-0.4e9, -0.3e9, -0.3e9}),
			Info: &models.CompanyInfo{
				TrailingPE:     models.Float(-12),
				ReturnOnEquity: models.Float(-0.08),
				DebtToEquity:   models.Float(240),
			},
		},
	}
}

// syntheticCloses is a deterministic drift-plus-oscillation price path.
func syntheticCloses(asOf time.Time, n int, start, drift, amplitude float64) []models.PricePoint {
	out := make([]models.PricePoint, 0, n)
	price := start
	for i := 0; i < n; i++ {
		price *= 1 + drift + amplitude*math.Sin(float64(i)*1.7)
		out = append(out, models.PricePoint{Date: asOf.AddDate(0, 0, i-n+1), Close: price})
	}
	return out
}

func annualSeries(asOf time.Time, revenue, income []float64) []models.FinancialPeriod {
	return periods(revenue, income, func(i int) time.Time { return asOf.AddDate(-i, 0, 0) })
}

func quarterlySeries(asOf time.Time, revenue, income []float64) []models.FinancialPeriod {
	return periods(revenue, income, func(i int) time.Time { return asOf.AddDate(0, -3*i, 0) })
}

// periods lays values out oldest first, the last one ending at asOf.
func periods(revenue, income []float64, end func(back int) time.Time) []models.FinancialPeriod {
	out := make([]models.FinancialPeriod, 0, len(revenue))
	for i := range revenue {
		out = append(out, models.FinancialPeriod{
			EndDate:      end(len(revenue) - 1 - i),
			TotalRevenue: models.Float(revenue[i]),
			NetIncome:    models.Float(income[i]),
		})
	}
	return out
}

func cashFlowSeries(asOf time.Time, ocf, capex []float64) []models.CashFlowPeriod {
	out := make([]models.CashFlowPeriod, 0, len(ocf))
	for i := range ocf {
		out = append(out, models.CashFlowPeriod{
			EndDate:             asOf.AddDate(-(len(ocf) - 1 - i), 0, 0),
			OperatingCashFlow:   models.Float(ocf[i]),
			CapitalExpenditures: models.Float(capex[i]),
		})
	}
	return out
}
