package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applogger "VaderBoot/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturePayloadKeepsBodyReadable(t *testing.T) {
	e := echo.New()
	var seen, captured string
	e.POST("/webhook", func(c echo.Context) error {
		b, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		seen = string(b)
		captured = string(RawPayload(c))
		return c.NoContent(http.StatusOK)
	}, CapturePayload())

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"ticker":"AAPL"}`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"ticker":"AAPL"}`, seen)
	assert.Equal(t, seen, captured)
}

func TestRawPayloadWithoutCapture(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, RawPayload(c))
}

func TestRecoverLogsPayload(t *testing.T) {
	var buf bytes.Buffer
	l := applogger.NewWithWriter(&buf, zerolog.DebugLevel)

	e := echo.New()
	e.Use(Recover(l))
	e.POST("/webhook", func(c echo.Context) error {
		panic("nil reading")
	}, CapturePayload())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"plot_0":1}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "nil reading")
	assert.Contains(t, buf.String(), `{\"plot_0\":1}`)
}

func TestRequestLoggingWarnsOnServerErrors(t *testing.T) {
	var buf bytes.Buffer
	l := applogger.NewWithWriter(&buf, zerolog.DebugLevel)

	e := echo.New()
	e.Use(RequestLogging(l))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream")
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"status":502`)
}

func TestMetricsCountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Metrics(prometheus.NewRegistry()))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/", http.MethodGet, "200"))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/", http.MethodGet, "200"))

	assert.Equal(t, 1.0, after-before)
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(204))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, "5xx", statusClass(0))
}
