package api

import (
	"context"
	"math"
	"time"

	"VaderBoot/internal/domain/models"
	xhttp "VaderBoot/pkg/http"
	"VaderBoot/pkg/http/middleware"
	xlogger "VaderBoot/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	serviceStatus = "VADERBOOT-IA 24/7 LIVE"
	serviceName   = "vaderboot-signal-engine"
	webhookPath   = "/webhook"
)

// SignalEvaluator runs a signal through the scoring pipeline.
type SignalEvaluator interface {
	Evaluate(ctx context.Context, sig models.Signal) (*models.Evaluation, error)
}

// WebhookEchoHandler serves the health probe and the alert webhook.
type WebhookEchoHandler struct {
	logger *xlogger.Logger
	engine SignalEvaluator
	now    func() time.Time
}

func NewWebhookEchoHandler(logger *xlogger.Logger, engine SignalEvaluator) *WebhookEchoHandler {
	return &WebhookEchoHandler{logger: logger, engine: engine, now: time.Now}
}

func (h *WebhookEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)
	e.POST(webhookPath, h.Webhook, middleware.CapturePayload())
}

func (h *WebhookEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{
		Status:    serviceStatus,
		Service:   serviceName,
		Webhook:   webhookPath,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Webhook validates the alert, evaluates it and returns the summary.
// Filtered signals answer 200 with status filtered and no decision.
func (h *WebhookEchoHandler) Webhook(c echo.Context) error {
	req := &models.WebhookRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.logger.Warn("webhook rejected",
			xlogger.Any("errors", verr),
			xlogger.String("payload", string(middleware.RawPayload(c))),
		)
		return xhttp.ValidationErrorResponse(c, verr)
	}

	sig, err := models.NewSignal(req.Ticker, models.Action(req.Action), req.ClosePrice(), req.Readings(), h.now())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	eval, err := h.engine.Evaluate(c.Request().Context(), sig)
	if err != nil {
		h.logger.Error("webhook processing failed",
			xlogger.String("signal_id", sig.ID),
			xlogger.String("ticker", sig.Ticker),
			xlogger.String("payload", string(middleware.RawPayload(c))),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, xhttp.InternalError("signal processing failed").WithError(err))
	}

	return xhttp.SuccessResponse(c, summarize(eval))
}

func summarize(e *models.Evaluation) models.WebhookResponse {
	resp := models.WebhookResponse{
		SignalID:         e.SignalID,
		Status:           "processed",
		Ticker:           e.Signal.Ticker,
		Action:           string(e.Signal.Action),
		Probability:      round(e.Assessment.Probability, 3),
		TechnicalScore:   round(e.Assessment.TechnicalScore, 4),
		FundamentalScore: round(e.Assessment.FundamentalScore, 4),
		KellyFraction:    round(e.Position.KellyFraction, 4),
		Reason:           e.Decision.Reason,
	}
	if e.Decision.Filtered() {
		resp.Status = string(models.OutcomeFiltered)
		return resp
	}
	outcome := e.Decision.Outcome
	resp.Decision = &outcome
	return resp
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
