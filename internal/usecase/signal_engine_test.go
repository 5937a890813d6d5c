package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"VaderBoot/internal/domain/models"
	"VaderBoot/internal/services/scoring"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignal(t *testing.T, action models.Action, tech models.TechnicalReadings) models.Signal {
	t.Helper()
	sig, err := models.NewSignal("msft", action, decimal.NewFromFloat(410.25), tech, time.Now())
	require.NoError(t, err)
	return sig
}

func TestEvaluateTradeNotifies(t *testing.T) {
	n := &fakeNotifier{}
	m := newRecordingMetrics()
	e := NewSignalEngine(&fakeAnalyzer{score: 0.5}, n, WithEngineMetrics(m))

	sig := newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2})
	eval, err := e.Evaluate(context.Background(), sig)
	require.NoError(t, err)

	assert.Equal(t, sig.ID, eval.SignalID)
	assert.Equal(t, 1.0, eval.Assessment.TechnicalScore)
	assert.InDelta(t, 0.755, eval.Assessment.Probability, 1e-9)
	assert.InDelta(t, 0.667, eval.Position.KellyFraction, 0.001)
	assert.Equal(t, models.OutcomeTrade, eval.Decision.Outcome)
	assert.Equal(t, []models.Outcome{models.OutcomeTrade}, m.outcomes)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0].Text, "BUY MSFT @410.25")
	assert.Contains(t, n.sent[0].Text, "🟢 BUY")
	assert.Same(t, eval, n.sent[0].Evaluation)
}

func TestEvaluateSkipStillNotifies(t *testing.T) {
	n := &fakeNotifier{}
	e := NewSignalEngine(&fakeAnalyzer{score: 0}, n)

	eval, err := e.Evaluate(context.Background(), newSignal(t, models.ActionSell, models.TechnicalReadings{RSI: 20, MACD: -1, RVOL: 0.3}))
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeSkip, eval.Decision.Outcome)
	assert.Less(t, eval.Assessment.Probability, 0.60)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0].Text, "🟡 WAIT")
}

func TestEvaluateFilteredIsNotNotified(t *testing.T) {
	n := &fakeNotifier{}
	policy := scoring.DefaultPolicy()
	policy.RewardRisk = 1
	e := NewSignalEngine(&fakeAnalyzer{score: 0}, n, WithPolicy(policy))

	eval, err := e.Evaluate(context.Background(), newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 0, MACD: -1, RVOL: 0}))
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeFiltered, eval.Decision.Outcome)
	assert.True(t, eval.Position.Rejected)
	assert.Less(t, eval.Position.KellyFraction, 0.01)
	assert.Empty(t, n.sent)
}

func TestEvaluateSwallowsDeliveryFailure(t *testing.T) {
	n := &fakeNotifier{err: errors.New("telegram unreachable")}
	e := NewSignalEngine(&fakeAnalyzer{score: 0.5}, n)

	eval, err := e.Evaluate(context.Background(), newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2}))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeTrade, eval.Decision.Outcome)
	assert.Len(t, n.sent, 1)
}

func TestEvaluateBoundsNotification(t *testing.T) {
	n := &fakeNotifier{block: true}
	e := NewSignalEngine(&fakeAnalyzer{score: 0.5}, n, WithNotifyTimeout(20*time.Millisecond))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := e.Evaluate(context.Background(), newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2}))
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("evaluate did not honour the notify timeout")
	}
}

func TestEvaluateIgnoresCallerCancellation(t *testing.T) {
	a := &fakeAnalyzer{score: 0.5}
	n := &fakeNotifier{}
	e := NewSignalEngine(a, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Evaluate(ctx, newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2}))
	require.NoError(t, err)
	assert.NoError(t, a.ctxErr)
	assert.Len(t, n.sent, 1)
}

func TestEvaluateUsesInjectedThreshold(t *testing.T) {
	policy := scoring.DefaultPolicy()
	policy.Threshold = 0.79
	e := NewSignalEngine(&fakeAnalyzer{score: 0.5}, &fakeNotifier{}, WithPolicy(policy))

	eval, err := e.Evaluate(context.Background(), newSignal(t, models.ActionBuy, models.TechnicalReadings{RSI: 80, MACD: 1, RVOL: 2}))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSkip, eval.Decision.Outcome)
}
