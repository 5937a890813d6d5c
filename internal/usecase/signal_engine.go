package usecase

import (
	"context"
	"fmt"
	"time"

	"VaderBoot/internal/domain/models"
	domrepo "VaderBoot/internal/domain/repository"
	"VaderBoot/internal/services/report"
	"VaderBoot/internal/services/scoring"
	"VaderBoot/pkg/logger"
)

// Analyzer produces the fundamental profile of a ticker. It must not fail.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) models.FundamentalProfile
}

// SignalEngine runs one signal forward through scoring, sizing, decision and notification.
// It holds no per-signal state; concurrent calls are independent.
type SignalEngine struct {
	analyzer      Analyzer
	notifier      domrepo.Notifier
	formatter     *report.Formatter
	metrics       domrepo.Metrics
	policy        scoring.Policy
	notifyTimeout time.Duration
	l             *logger.Logger
	now           func() time.Time
}

// EngineOption configures SignalEngine.
type EngineOption func(*SignalEngine)

func NewSignalEngine(analyzer Analyzer, notifier domrepo.Notifier, opts ...EngineOption) *SignalEngine {
	e := &SignalEngine{
		analyzer:      analyzer,
		notifier:      notifier,
		metrics:       nopMetrics{},
		policy:        scoring.DefaultPolicy(),
		notifyTimeout: 10 * time.Second,
		l:             logger.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.formatter = report.NewFormatter(e.policy)
	return e
}

func WithPolicy(p scoring.Policy) EngineOption {
	return func(e *SignalEngine) { e.policy = p }
}

// WithNotifyTimeout bounds each delivery.
func WithNotifyTimeout(d time.Duration) EngineOption {
	return func(e *SignalEngine) {
		if d > 0 {
			e.notifyTimeout = d
		}
	}
}

func WithEngineMetrics(m domrepo.Metrics) EngineOption {
	return func(e *SignalEngine) {
		if m != nil {
			e.metrics = m
		}
	}
}

func WithEngineLogger(l *logger.Logger) EngineOption {
	return func(e *SignalEngine) {
		if l != nil {
			e.l = l
		}
	}
}

// WithClock overrides the evaluation timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *SignalEngine) { e.now = now }
}

// Policy returns the policy the engine scores with.
func (e *SignalEngine) Policy() scoring.Policy { return e.policy }

// Evaluate scores sig and notifies unless it was filtered.
// Cancellation of ctx is ignored: once accepted, a signal runs to completion.
// Delivery failures are logged, never returned.
func (e *SignalEngine) Evaluate(ctx context.Context, sig models.Signal) (*models.Evaluation, error) {
	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	l := e.l.With(logger.String("signal_id", sig.ID), logger.String("ticker", sig.Ticker))

	technical := scoring.TechnicalScore(sig.RSI, sig.MACD, sig.RVOL)
	fundamentals := e.analyzer.Analyze(ctx, sig.Ticker)

	assessment, err := scoring.Combine(technical, fundamentals.Score)
	if err != nil {
		return nil, fmt.Errorf("combine scores for %s: %w", sig.Ticker, err)
	}
	position := scoring.SizePosition(assessment.Probability, e.policy)
	decision := scoring.Decide(assessment.Probability, position, e.policy)

	eval := &models.Evaluation{
		SignalID:     sig.ID,
		Signal:       sig,
		Fundamentals: fundamentals,
		Assessment:   assessment,
		Position:     position,
		Decision:     decision,
		EvaluatedAt:  e.now().UTC(),
	}

	e.metrics.RecordSignal(decision.Outcome, assessment.Probability)
	l.Info("signal evaluated",
		logger.String("action", string(sig.Action)),
		logger.Float64("technical_score", assessment.TechnicalScore),
		logger.Float64("fundamental_score", assessment.FundamentalScore),
		logger.Float64("probability", assessment.Probability),
		logger.Float64("kelly_fraction", position.KellyFraction),
		logger.String("outcome", string(decision.Outcome)),
		logger.String("reason", decision.Reason),
	)

	if !decision.Filtered() {
		e.notify(ctx, l, eval)
	}

	eval.Duration = time.Since(start)
	e.metrics.RecordLatency("signal_evaluation", eval.Duration.Seconds())
	return eval, nil
}

func (e *SignalEngine) notify(ctx context.Context, l *logger.Logger, eval *models.Evaluation) {
	ctx, cancel := context.WithTimeout(ctx, e.notifyTimeout)
	defer cancel()

	n := models.Notification{Text: e.formatter.Format(eval), Evaluation: eval}
	if err := e.notifier.Notify(ctx, n); err != nil {
		l.Warn("notification delivery failed",
			logger.String("channel", e.notifier.Name()),
			logger.Error(err),
		)
		return
	}
	l.Debug("notification delivered", logger.String("channel", e.notifier.Name()))
}
