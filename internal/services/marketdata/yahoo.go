package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
	"VaderBoot/internal/service/ratelimit"
	xhttp "VaderBoot/pkg/http"
)

const (
	moduleAnnualIncome    = "incomeStatementHistory"
	moduleQuarterlyIncome = "incomeStatementHistoryQuarterly"
	moduleCashFlow        = "cashflowStatementHistory"
	moduleFinancialData   = "financialData"
	moduleKeyStatistics   = "defaultKeyStatistics"
	moduleSummaryDetail   = "summaryDetail"
)

// YahooConfig holds the Yahoo Finance endpoints and client policy.
type YahooConfig struct {
	ChartURL      string
	SummaryURL    string
	Timeout       time.Duration
	RetryMax      int
	BackoffMin    time.Duration
	BackoffMax    time.Duration
	RatePerMinute int
}

// YahooProvider reads daily closes from the chart API and statements from quoteSummary.
type YahooProvider struct {
	base       *HTTPServiceBase
	chartURL   string
	summaryURL string
}

var _ domrepo.MarketDataProvider = (*YahooProvider)(nil)

func NewYahooProvider(cfg YahooConfig) *YahooProvider {
	client := xhttp.NewClient(
		xhttp.WithTimeout(cfg.Timeout),
		xhttp.WithRetry(cfg.RetryMax, cfg.BackoffMin, cfg.BackoffMax),
	)
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": "Mozilla/5.0 (compatible; vaderboot/1.0)",
	}
	return &YahooProvider{
		base:       NewHTTPServiceBase("yahoo", client, ratelimit.New("yahoo", cfg.RatePerMinute), headers),
		chartURL:   strings.TrimRight(cfg.ChartURL, "/"),
		summaryURL: strings.TrimRight(cfg.SummaryURL, "/"),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

type rawValue struct {
	Raw *float64 `json:"raw"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type incomeRow struct {
	EndDate      rawValue `json:"endDate"`
	TotalRevenue rawValue `json:"totalRevenue"`
	NetIncome    rawValue `json:"netIncome"`
}

type cashFlowRow struct {
	EndDate                          rawValue `json:"endDate"`
	TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures              rawValue `json:"capitalExpenditures"`
	FreeCashFlow                     rawValue `json:"freeCashFlow"`
}

type summaryResult struct {
	IncomeStatementHistory struct {
		Rows []incomeRow `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly struct {
		Rows []incomeRow `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
	CashflowStatementHistory struct {
		Rows []cashFlowRow `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	FinancialData struct {
		ReturnOnEquity rawValue `json:"returnOnEquity"`
		DebtToEquity   rawValue `json:"debtToEquity"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		ForwardPE rawValue `json:"forwardPE"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail struct {
		ForwardPE  rawValue `json:"forwardPE"`
		TrailingPE rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *yahooError     `json:"error"`
	} `json:"quoteSummary"`
}

// DailyCloses returns up to days of daily closes, skipping null bars.
func (p *YahooProvider) DailyCloses(ctx context.Context, symbol string, days int) ([]models.PricePoint, error) {
	const query = "daily_closes"
	var resp chartResponse
	u := fmt.Sprintf("%s/v8/finance/chart/%s", p.chartURL, url.PathEscape(symbol))
	params := url.Values{"range": {chartRange(days)}, "interval": {"1d"}}
	if err := p.base.GetJSON(ctx, query, u, params, &resp); err != nil {
		return nil, err
	}
	if e := resp.Chart.Error; e != nil {
		return nil, p.base.wrap(query, fmt.Errorf("%s: %s", e.Code, e.Description))
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, p.base.wrap(query, ErrNoData)
	}

	r := resp.Chart.Result[0]
	closes := r.Indicators.Quote[0].Close
	out := make([]models.PricePoint, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		out = append(out, models.PricePoint{Date: time.Unix(ts, 0).UTC(), Close: *closes[i]})
	}
	if len(out) == 0 {
		return nil, p.base.wrap(query, ErrNoData)
	}
	return out, nil
}

func (p *YahooProvider) AnnualFinancials(ctx context.Context, symbol string) ([]models.FinancialPeriod, error) {
	r, err := p.summary(ctx, "annual_financials", symbol, moduleAnnualIncome)
	if err != nil {
		return nil, err
	}
	return incomePeriods(r.IncomeStatementHistory.Rows), nil
}

func (p *YahooProvider) QuarterlyFinancials(ctx context.Context, symbol string) ([]models.FinancialPeriod, error) {
	r, err := p.summary(ctx, "quarterly_financials", symbol, moduleQuarterlyIncome)
	if err != nil {
		return nil, err
	}
	return incomePeriods(r.IncomeStatementHistoryQuarterly.Rows), nil
}

func (p *YahooProvider) CashFlows(ctx context.Context, symbol string) ([]models.CashFlowPeriod, error) {
	r, err := p.summary(ctx, "cash_flows", symbol, moduleCashFlow)
	if err != nil {
		return nil, err
	}
	rows := r.CashflowStatementHistory.Rows
	out := make([]models.CashFlowPeriod, 0, len(rows))
	for _, row := range rows {
		if row.EndDate.Raw == nil {
			continue
		}
		out = append(out, models.CashFlowPeriod{
			EndDate:             unixDate(*row.EndDate.Raw),
			OperatingCashFlow:   row.TotalCashFromOperatingActivities.Raw,
			CapitalExpenditures: row.CapitalExpenditures.Raw,
			FreeCashFlow:        row.FreeCashFlow.Raw,
		})
	}
	return out, nil
}

// CompanyInfo prefers the key-statistics forward P/E over the summary-detail one.
func (p *YahooProvider) CompanyInfo(ctx context.Context, symbol string) (models.CompanyInfo, error) {
	r, err := p.summary(ctx, "company_info", symbol, moduleFinancialData, moduleKeyStatistics, moduleSummaryDetail)
	if err != nil {
		return models.CompanyInfo{}, err
	}
	forward := r.DefaultKeyStatistics.ForwardPE.Raw
	if forward == nil {
		forward = r.SummaryDetail.ForwardPE.Raw
	}
	return models.CompanyInfo{
		ForwardPE:      forward,
		TrailingPE:     r.SummaryDetail.TrailingPE.Raw,
		ReturnOnEquity: r.FinancialData.ReturnOnEquity.Raw,
		DebtToEquity:   r.FinancialData.DebtToEquity.Raw,
	}, nil
}

func (p *YahooProvider) summary(ctx context.Context, query, symbol string, modules ...string) (*summaryResult, error) {
	var resp summaryResponse
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", p.summaryURL, url.PathEscape(symbol))
	params := url.Values{"modules": {strings.Join(modules, ",")}}
	if err := p.base.GetJSON(ctx, query, u, params, &resp); err != nil {
		return nil, err
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, p.base.wrap(query, fmt.Errorf("%s: %s", e.Code, e.Description))
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, p.base.wrap(query, ErrNoData)
	}
	return &resp.QuoteSummary.Result[0], nil
}

func incomePeriods(rows []incomeRow) []models.FinancialPeriod {
	out := make([]models.FinancialPeriod, 0, len(rows))
	for _, row := range rows {
		if row.EndDate.Raw == nil {
			continue
		}
		out = append(out, models.FinancialPeriod{
			EndDate:      unixDate(*row.EndDate.Raw),
			TotalRevenue: row.TotalRevenue.Raw,
			NetIncome:    row.NetIncome.Raw,
		})
	}
	return out
}

// unixDate truncates to the day so quarters from different modules align.
func unixDate(sec float64) time.Time {
	return time.Unix(int64(sec), 0).UTC().Truncate(24 * time.Hour)
}

func chartRange(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 731:
		return "2y"
	default:
		return "5y"
	}
}
