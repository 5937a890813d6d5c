// Package marketdata implements the market-data providers behind repository.MarketDataProvider.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"VaderBoot/internal/service/ratelimit"
	xhttp "VaderBoot/pkg/http"
)

// ErrNoData is returned when the provider answered but had nothing for the symbol.
var ErrNoData = errors.New("no data")

// ProviderError is an upstream data failure for one query.
type ProviderError struct {
	Provider  string
	Query     string
	Status    int
	Retryable bool
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Query, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Query, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// HTTPServiceBase is the shared GET/JSON plumbing of HTTP providers.
// Every call waits on the limiter, then goes through the client's retry policy.
type HTTPServiceBase struct {
	name    string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	headers map[string]string
}

func NewHTTPServiceBase(name string, client *xhttp.Client, limiter *ratelimit.Limiter, headers map[string]string) *HTTPServiceBase {
	if limiter == nil {
		limiter = ratelimit.New(name, 0)
	}
	return &HTTPServiceBase{name: name, client: client, limiter: limiter, headers: headers}
}

// GetJSON fetches baseURL+path and decodes the JSON body into dest.
// Failures come back as *ProviderError tagged with query.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, query, rawURL string, params url.Values, dest interface{}) error {
	if b.client == nil {
		return b.wrap(query, fmt.Errorf("http client not initialized"))
	}
	if err := b.limiter.Wait(ctx); err != nil {
		return b.wrap(query, err)
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         rawURL,
		Headers:     b.headers,
		QueryParams: params,
	}, dest)
	if err != nil {
		return b.wrap(query, err)
	}
	return nil
}

func (b *HTTPServiceBase) wrap(query string, err error) error {
	pe := &ProviderError{Provider: b.name, Query: query, Err: err, Retryable: xhttp.IsRetryable(err)}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		pe.Status = se.StatusCode
	}
	return pe
}
