package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"VaderBoot/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderServesFixtures(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	p := NewStaticProvider(DemoFixtures(asOf))
	ctx := context.Background()

	closes, err := p.DailyCloses(ctx, "demo", 100)
	require.NoError(t, err)
	assert.Len(t, closes, 100)
	assert.Equal(t, asOf, closes[len(closes)-1].Date)

	annual, err := p.AnnualFinancials(ctx, "DEMO")
	require.NoError(t, err)
	require.Len(t, annual, 4)
	assert.True(t, annual[0].EndDate.Before(annual[3].EndDate))

	info, err := p.CompanyInfo(ctx, "DEMO")
	require.NoError(t, err)
	assert.Equal(t, 18.5, *info.ForwardPE)
}

func TestStaticProviderUnknownSymbol(t *testing.T) {
	p := NewStaticProvider(nil)

	_, err := p.CashFlows(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "cash_flows", pe.Query)
}

func TestStaticProviderMissingInfo(t *testing.T) {
	p := NewStaticProvider(map[string]Fixture{"x": {Closes: []models.PricePoint{{Close: 1}}}})

	_, err := p.CompanyInfo(context.Background(), "X")
	assert.ErrorIs(t, err, ErrNoData)
}
