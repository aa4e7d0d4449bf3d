package update_window

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine"
	windowstore "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/window"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type mockWindowRepo struct {
	window *domain.AvailabilityWindow
	getErr error

	updated     *domain.AvailabilityWindow
	deactivated bool
}

func (m *mockWindowRepo) GetByID(context.Context, int64) (*domain.AvailabilityWindow, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.window, nil
}

func (m *mockWindowRepo) Update(_ context.Context, w *domain.AvailabilityWindow) error {
	m.updated = w
	return nil
}

func (m *mockWindowRepo) SetActive(_ context.Context, _ int64, active bool) error {
	m.deactivated = !active
	return nil
}

type mockChecker struct {
	decision *engine.MutationDecision
	err      error
}

func (m *mockChecker) CheckWindowMutation(context.Context, *domain.AvailabilityWindow, engine.WindowChange) (*engine.MutationDecision, error) {
	return m.decision, m.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func storedWindow() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:            7,
		ResourceID:    10,
		Type:          domain.WindowRegular,
		MaxConcurrent: 2,
		IsActive:      true,
	}
}

func newUC(repo *mockWindowRepo, checker *mockChecker) *UseCase {
	return New(repo, checker, passthroughTxManager{}, nopLogger{})
}

func TestExecute_Applied(t *testing.T) {
	repo := &mockWindowRepo{window: storedWindow()}
	checker := &mockChecker{decision: &engine.MutationDecision{OK: true}}

	uc := newUC(repo, checker)

	resp, err := uc.Execute(context.Background(), Request{
		WindowID: 7,
		Change:   engine.WindowChange{MaxConcurrent: ptr.Ptr(5)},
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Window)
	assert.Equal(t, 5, resp.Window.MaxConcurrent)

	require.NotNil(t, repo.updated)
	assert.Equal(t, 5, repo.updated.MaxConcurrent)
	assert.False(t, repo.deactivated)
}

func TestExecute_RejectedKeepsWindow(t *testing.T) {
	repo := &mockWindowRepo{window: storedWindow()}
	checker := &mockChecker{decision: &engine.MutationDecision{
		OK:            false,
		AffectedCount: 3,
		Violations: []domain.Violation{
			domain.NewViolation("window", domain.CodeWouldOrphanReservations, "3 future reservations would no longer fit"),
		},
	}}

	uc := newUC(repo, checker)

	resp, err := uc.Execute(context.Background(), Request{
		WindowID: 7,
		Change:   engine.WindowChange{MaxConcurrent: ptr.Ptr(1)},
	})
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, 3, resp.AffectedCount)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, domain.CodeWouldOrphanReservations, resp.Violations[0].Code)

	assert.Nil(t, repo.updated)
}

func TestExecute_DeactivateUsesSetActive(t *testing.T) {
	repo := &mockWindowRepo{window: storedWindow()}
	checker := &mockChecker{decision: &engine.MutationDecision{OK: true}}

	uc := newUC(repo, checker)

	resp, err := uc.Execute(context.Background(), Request{
		WindowID: 7,
		Change:   engine.WindowChange{Deactivate: true},
	})
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.False(t, resp.Window.IsActive)

	assert.True(t, repo.deactivated)
	assert.Nil(t, repo.updated)
}

func TestExecute_WindowNotFound(t *testing.T) {
	repo := &mockWindowRepo{getErr: windowstore.ErrWindowNotFound}

	uc := newUC(repo, &mockChecker{})

	_, err := uc.Execute(context.Background(), Request{WindowID: 7})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestExecute_InvalidWindowID(t *testing.T) {
	uc := newUC(&mockWindowRepo{}, &mockChecker{})

	_, err := uc.Execute(context.Background(), Request{WindowID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CheckerFailure(t *testing.T) {
	repo := &mockWindowRepo{window: storedWindow()}
	checker := &mockChecker{err: errors.New("store down")}

	uc := newUC(repo, checker)

	_, err := uc.Execute(context.Background(), Request{WindowID: 7})
	assert.ErrorIs(t, err, ErrInternal)
}
