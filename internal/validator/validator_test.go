package validator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
)

type mockEngine struct {
	decision *engine.Decision
	err      error

	gotRequest engine.Request
}

func (m *mockEngine) Check(_ context.Context, req engine.Request) (*engine.Decision, error) {
	m.gotRequest = req
	return m.decision, m.err
}

type mockGraph struct {
	violations []domain.Violation
	err        error

	called bool
}

func (m *mockGraph) ValidateSelection(_ context.Context, _ []int64) ([]domain.Violation, error) {
	m.called = true
	return m.violations, m.err
}

type mockHoldLedger struct {
	holdID uuid.UUID
	err    error

	gotCost int
}

func (m *mockHoldLedger) ReserveTentative(_ int64, _ domain.TimeRange, cost int) (uuid.UUID, error) {
	m.gotCost = cost
	return m.holdID, m.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRequest(t *testing.T, addOnIDs ...int64) Request {
	t.Helper()
	tr, err := domain.NewTimeRange(
		time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return Request{ResourceID: 10, TimeRange: tr, AddOnIDs: addOnIDs}
}

func acceptedDecision() *engine.Decision {
	return &engine.Decision{
		Accepted:      true,
		MatchedWindow: &domain.AvailabilityWindow{ID: 1, ResourceID: 10},
	}
}

func TestValidate_Accepted(t *testing.T) {
	eng := &mockEngine{decision: acceptedDecision()}
	graph := &mockGraph{}
	ledger := &mockHoldLedger{holdID: uuid.New()}

	v := New(eng, graph, ledger, nopLogger{})

	acceptance, violations, err := v.Validate(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, acceptance)
	assert.NotEqual(t, uuid.Nil, acceptance.Token)
	assert.Equal(t, ledger.holdID, acceptance.HoldID)
	assert.Equal(t, int64(1), acceptance.MatchedWindow.ID)

	// Граф не вызывается без add-on'ов
	assert.False(t, graph.called)
	assert.Equal(t, domain.DefaultCapacityCost, ledger.gotCost)
}

func TestValidate_AddOnsChecked(t *testing.T) {
	eng := &mockEngine{decision: acceptedDecision()}
	graph := &mockGraph{}
	ledger := &mockHoldLedger{holdID: uuid.New()}

	v := New(eng, graph, ledger, nopLogger{})

	_, violations, err := v.Validate(context.Background(), testRequest(t, 1, 2))
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.True(t, graph.called)
}

func TestValidate_MergesViolations(t *testing.T) {
	eng := &mockEngine{decision: &engine.Decision{
		Violations: []domain.Violation{
			domain.NewViolation("timeRange", domain.CodeCapacityExceeded, "full"),
		},
	}}
	graph := &mockGraph{violations: []domain.Violation{
		domain.NewViolation("addOnIds", domain.CodeMissingPrerequisite, "add-on 2 requires add-on 1"),
	}}
	ledger := &mockHoldLedger{}

	v := New(eng, graph, ledger, nopLogger{})

	acceptance, violations, err := v.Validate(context.Background(), testRequest(t, 2))
	require.NoError(t, err)
	assert.Nil(t, acceptance)
	require.Len(t, violations, 2)
	assert.Equal(t, domain.CodeCapacityExceeded, violations[0].Code)
	assert.Equal(t, domain.CodeMissingPrerequisite, violations[1].Code)

	// Холд при отказе не ставится
	assert.Zero(t, ledger.gotCost)
}

func TestValidate_DependencyCheckRunsDespiteEngineRejection(t *testing.T) {
	eng := &mockEngine{decision: &engine.Decision{
		Violations: []domain.Violation{
			domain.NewViolation("timeRange", domain.CodeBlocked, "blocked"),
		},
	}}
	graph := &mockGraph{}

	v := New(eng, graph, &mockHoldLedger{}, nopLogger{})

	_, violations, err := v.Validate(context.Background(), testRequest(t, 5))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.True(t, graph.called)
}

func TestValidate_EngineError(t *testing.T) {
	eng := &mockEngine{err: errors.New("store down")}

	v := New(eng, &mockGraph{}, &mockHoldLedger{}, nopLogger{})

	_, _, err := v.Validate(context.Background(), testRequest(t))
	assert.Error(t, err)
}

func TestValidate_GraphError(t *testing.T) {
	eng := &mockEngine{decision: acceptedDecision()}
	graph := &mockGraph{err: errors.New("store down")}

	v := New(eng, graph, &mockHoldLedger{}, nopLogger{})

	_, _, err := v.Validate(context.Background(), testRequest(t, 1))
	assert.Error(t, err)
}

func TestValidate_HoldError(t *testing.T) {
	eng := &mockEngine{decision: acceptedDecision()}
	ledger := &mockHoldLedger{err: errors.New("invalid cost")}

	v := New(eng, &mockGraph{}, ledger, nopLogger{})

	acceptance, violations, err := v.Validate(context.Background(), testRequest(t))
	assert.Error(t, err)
	assert.Nil(t, acceptance)
	assert.Nil(t, violations)
}

func TestValidate_ExplicitCostPassedToHold(t *testing.T) {
	eng := &mockEngine{decision: acceptedDecision()}
	ledger := &mockHoldLedger{holdID: uuid.New()}

	v := New(eng, &mockGraph{}, ledger, nopLogger{})

	req := testRequest(t)
	req.CapacityCost = 3

	_, _, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.gotCost)
	assert.Equal(t, 3, eng.gotRequest.CapacityCost)
}
