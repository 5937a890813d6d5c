package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParseRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(time.Second), WithRetry(2, time.Millisecond, 2*time.Millisecond))
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		QueryParams: map[string][]string{"symbol": {"AAPL"}},
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendAndParseDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithRetry(3, time.Millisecond, time.Millisecond))
	err := c.SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL}, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.False(t, se.Retryable())
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendAndParsePostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient()
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: MethodPost,
		URL:    srv.URL,
		Body:   map[string]string{"chat_id": "1"},
	}, nil)
	assert.NoError(t, err)
}

func TestRetryAbortsOnContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithRetry(5, 200*time.Millisecond, time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: srv.URL}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoffIsCapped(t *testing.T) {
	c := NewClient(WithRetry(10, 100*time.Millisecond, 500*time.Millisecond))
	assert.Equal(t, 100*time.Millisecond, c.backoff(1))
	assert.Equal(t, 200*time.Millisecond, c.backoff(2))
	assert.Equal(t, 500*time.Millisecond, c.backoff(4))
	assert.Equal(t, 500*time.Millisecond, c.backoff(20))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(&StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRetryable(&StatusError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsRetryable(context.Canceled))
}
