package scoring

import (
	"math"
	"sort"
	"time"

	"VaderBoot/internal/domain/models"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily return volatility.
const TradingDaysPerYear = 252

// DailyReturns computes simple close-to-close returns in date order.
// Pairs with a non-positive previous close are skipped.
func DailyReturns(points []models.PricePoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	sorted := make([]models.PricePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Close, sorted[i].Close
		if prev <= 0 || !finite(prev) || !finite(cur) {
			continue
		}
		out = append(out, (cur-prev)/prev)
	}
	return out
}

// AnnualizedVolatility is the sample stdev of daily returns scaled by √252.
func AnnualizedVolatility(points []models.PricePoint) models.Metric {
	rets := DailyReturns(points)
	if len(rets) < 2 {
		return models.Unavailablef("need at least 2 daily returns, have %d", len(rets))
	}
	return models.Known(stat.StdDev(rets, nil) * math.Sqrt(TradingDaysPerYear))
}

// CAGR is (last/first)^(1/(N-1)) - 1 over the N usable periods, oldest first.
// Fewer than two periods, a non-positive start or a negative end are unavailable.
func CAGR(values []float64) models.Metric {
	usable := make([]float64, 0, len(values))
	for _, v := range values {
		if finite(v) {
			usable = append(usable, v)
		}
	}
	n := len(usable)
	if n < 2 {
		return models.Unavailablef("need at least 2 periods, have %d", n)
	}
	first, last := usable[0], usable[n-1]
	if first <= 0 {
		return models.Unavailablef("non-positive starting value %v", first)
	}
	if last < 0 {
		return models.Unavailablef("negative ending value %v", last)
	}
	return models.Known(math.Pow(last/first, 1/float64(n-1)) - 1)
}

// RevenueSeries returns total revenue per period ordered oldest first.
func RevenueSeries(periods []models.FinancialPeriod) []float64 {
	sorted := sortedFinancials(periods)
	out := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if p.TotalRevenue != nil {
			out = append(out, *p.TotalRevenue)
		}
	}
	return out
}

// FreeCashFlows returns FCF per period ordered oldest first.
// When the provider gives no FCF it is operating cash flow less capital expenditures.
func FreeCashFlows(periods []models.CashFlowPeriod) []float64 {
	sorted := make([]models.CashFlowPeriod, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EndDate.Before(sorted[j].EndDate) })

	out := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		switch {
		case p.FreeCashFlow != nil:
			out = append(out, *p.FreeCashFlow)
		case p.OperatingCashFlow != nil && p.CapitalExpenditures != nil:
			// Providers disagree on the sign of capex.
			out = append(out, *p.OperatingCashFlow-math.Abs(*p.CapitalExpenditures))
		}
	}
	return out
}

// MarginTrend is the change in net margin, in percentage points, between the
// earliest and latest quarter that report both revenue and net income.
func MarginTrend(quarters []models.FinancialPeriod) models.Metric {
	type margin struct {
		date  time.Time
		value float64
	}
	byDate := map[int64]margin{}
	for _, q := range quarters {
		if q.TotalRevenue == nil || q.NetIncome == nil || *q.TotalRevenue == 0 {
			continue
		}
		m := *q.NetIncome / *q.TotalRevenue
		if !finite(m) {
			continue
		}
		byDate[q.EndDate.Unix()] = margin{date: q.EndDate, value: m}
	}
	if len(byDate) < 2 {
		return models.Unavailablef("need at least 2 aligned quarters, have %d", len(byDate))
	}
	margins := make([]margin, 0, len(byDate))
	for _, m := range byDate {
		margins = append(margins, m)
	}
	sort.Slice(margins, func(i, j int) bool { return margins[i].date.Before(margins[j].date) })
	return models.Known((margins[len(margins)-1].value - margins[0].value) * 100)
}

// PERatio prefers forward P/E and falls back to trailing.
func PERatio(info models.CompanyInfo) models.Metric {
	if info.ForwardPE != nil && finite(*info.ForwardPE) {
		return models.Known(*info.ForwardPE)
	}
	if info.TrailingPE != nil && finite(*info.TrailingPE) {
		return models.Known(*info.TrailingPE)
	}
	return models.Unavailable("no forward or trailing P/E")
}

// OptionalMetric converts a provider value that may be absent.
func OptionalMetric(v *float64, name string) models.Metric {
	if v == nil {
		return models.Unavailablef("%s not reported", name)
	}
	return models.Known(*v)
}

func sortedFinancials(periods []models.FinancialPeriod) []models.FinancialPeriod {
	sorted := make([]models.FinancialPeriod, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EndDate.Before(sorted[j].EndDate) })
	return sorted
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
