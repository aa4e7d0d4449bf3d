package depgraph

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type mockAddOnStore struct {
	nodes map[int64]*domain.AddOnNode
	err   error
}

func (m *mockAddOnStore) Get(_ context.Context, id int64) (*domain.AddOnNode, error) {
	if m.err != nil {
		return nil, m.err
	}
	node, ok := m.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: add-on %d", ErrAddOnNotFound, id)
	}
	return node, nil
}

func newStore(nodes ...*domain.AddOnNode) *mockAddOnStore {
	m := &mockAddOnStore{nodes: make(map[int64]*domain.AddOnNode)}
	for _, n := range nodes {
		m.nodes[n.ID] = n
	}
	return m
}

func codes(violations []domain.Violation) []domain.ViolationCode {
	out := make([]domain.ViolationCode, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

func TestValidateSelection_Clean(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1},
		&domain.AddOnNode{ID: 2, Prerequisites: []int64{1}},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSelection_Undeclared(t *testing.T) {
	g := NewGraph(newStore(&domain.AddOnNode{ID: 1}))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 7})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.CodeMissingPrerequisite, violations[0].Code)
	assert.Equal(t, "add-on 7 is not declared", violations[0].Message)
}

func TestValidateSelection_MissingPrerequisite(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1},
		&domain.AddOnNode{ID: 2, Prerequisites: []int64{1}},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{2})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.CodeMissingPrerequisite, violations[0].Code)
	assert.Equal(t, "add-on 2 requires add-on 1", violations[0].Message)
}

func TestValidateSelection_IncompatiblePairReportedOnce(t *testing.T) {
	// Несовместимость объявлена с обеих сторон
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1, IncompatibleWith: []int64{2}},
		&domain.AddOnNode{ID: 2, IncompatibleWith: []int64{1}},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.CodeIncompatible, violations[0].Code)
	assert.Equal(t, "add-ons 1 and 2 cannot be selected together", violations[0].Message)
}

func TestValidateSelection_IncompatibleDeclaredByOneSide(t *testing.T) {
	// Ребро объявлено только у узла с большим id
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1},
		&domain.AddOnNode{ID: 2, IncompatibleWith: []int64{1}},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.CodeIncompatible, violations[0].Code)
	assert.Equal(t, "add-ons 1 and 2 cannot be selected together", violations[0].Message)
	assert.Equal(t, int64(1), violations[0].Context["addOnIdA"])
	assert.Equal(t, int64(2), violations[0].Context["addOnIdB"])
}

func TestValidateSelection_IncompatibleNotSelected(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1, IncompatibleWith: []int64{2}},
		&domain.AddOnNode{ID: 2},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSelection_SelfReference(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1, Prerequisites: []int64{1}},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.CodeCircularDependency, violations[0].Code)
}

func TestValidateSelection_CollectsAllViolations(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1, Prerequisites: []int64{5}},
		&domain.AddOnNode{ID: 2, IncompatibleWith: []int64{3}},
		&domain.AddOnNode{ID: 3},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 2, 3, 9})
	require.NoError(t, err)
	require.Len(t, violations, 3)
	assert.ElementsMatch(t, []domain.ViolationCode{
		domain.CodeMissingPrerequisite,
		domain.CodeMissingPrerequisite,
		domain.CodeIncompatible,
	}, codes(violations))

	// Сообщения отсортированы детерминированно
	for i := 1; i < len(violations); i++ {
		assert.LessOrEqual(t, violations[i-1].Message, violations[i].Message)
	}
}

func TestValidateSelection_DuplicateIDs(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1, IncompatibleWith: []int64{2}},
		&domain.AddOnNode{ID: 2},
	))

	violations, err := g.ValidateSelection(context.Background(), []int64{1, 1, 2, 2})
	require.NoError(t, err)
	require.Len(t, violations, 1)
}

func TestValidateSelection_StoreError(t *testing.T) {
	g := NewGraph(&mockAddOnStore{err: errors.New("connection refused")})

	_, err := g.ValidateSelection(context.Background(), []int64{1})
	assert.ErrorIs(t, err, ErrStore)
}

func TestWouldCreateCycle_Self(t *testing.T) {
	g := NewGraph(newStore())

	cycle, err := g.WouldCreateCycle(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, cycle)
}

func TestWouldCreateCycle_Direct(t *testing.T) {
	// 2 уже требует 1; добавление 2 как пререквизита 1 замыкает цикл
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1},
		&domain.AddOnNode{ID: 2, Prerequisites: []int64{1}},
	))

	cycle, err := g.WouldCreateCycle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, cycle)
}

func TestWouldCreateCycle_Transitive(t *testing.T) {
	// 3 -> 2 -> 1; добавление 3 как пререквизита 1 замыкает цикл
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 1},
		&domain.AddOnNode{ID: 2, Prerequisites: []int64{1}},
		&domain.AddOnNode{ID: 3, Prerequisites: []int64{2}},
	))

	cycle, err := g.WouldCreateCycle(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, cycle)

	cycle, err = g.WouldCreateCycle(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.False(t, cycle)
}

func TestWouldCreateCycle_MissingNodesSkipped(t *testing.T) {
	g := NewGraph(newStore(
		&domain.AddOnNode{ID: 2, Prerequisites: []int64{7}},
	))

	cycle, err := g.WouldCreateCycle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, cycle)
}
