// Package depgraph проверяет ограничения между add-on'ами:
// обязательные зависимости, несовместимость и отсутствие циклов.
package depgraph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AddOnStore интерфейс хранилища объявленных add-on'ов
type AddOnStore interface {
	Get(ctx context.Context, id int64) (*domain.AddOnNode, error)
}

// Graph validates add-on selections against declared prerequisite and
// incompatibility edges.
type Graph struct {
	store AddOnStore
}

// NewGraph creates a dependency graph over the given store.
func NewGraph(store AddOnStore) *Graph {
	return &Graph{store: store}
}

// ValidateSelection checks a selected set of add-on ids and returns every
// violation found: self-references, prerequisites absent from the
// selection, and incompatible pairs. It never short-circuits - callers
// need the complete list.
func (g *Graph) ValidateSelection(ctx context.Context, selectedIDs []int64) ([]domain.Violation, error) {
	selected := make(map[int64]*domain.AddOnNode, len(selectedIDs))
	order := make([]int64, 0, len(selectedIDs))

	violations := make([]domain.Violation, 0)

	for _, id := range selectedIDs {
		if _, seen := selected[id]; seen {
			continue
		}
		node, err := g.store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrAddOnNotFound) {
				violations = append(violations,
					domain.NewViolation("addOnIds", domain.CodeMissingPrerequisite,
						"add-on %d is not declared", id).
						WithContext("addOnId", id))
				continue
			}
			return nil, fmt.Errorf("%w: get add-on %d: %v", ErrStore, id, err)
		}
		selected[id] = node
		order = append(order, id)
	}

	// Несовместимость симметрична и может быть объявлена любой стороной,
	// поэтому пары сначала собираются, а дедупликация идёт по ключу (min, max)
	incompatiblePairs := make(map[[2]int64]bool)

	for _, id := range order {
		node := selected[id]

		// Ссылка на самого себя отклоняется до любого обхода графа
		if node.RequiresSelf() || node.ConflictsWithSelf() {
			violations = append(violations,
				domain.NewViolation("addOnIds", domain.CodeCircularDependency,
					"add-on %d references itself", id).
					WithContext("addOnId", id))
			continue
		}

		for _, prereq := range node.Prerequisites {
			if _, ok := selected[prereq]; !ok {
				violations = append(violations,
					domain.NewViolation("addOnIds", domain.CodeMissingPrerequisite,
						"add-on %d requires add-on %d", id, prereq).
						WithContext("addOnId", id).
						WithContext("prerequisiteId", prereq))
			}
		}

		for _, other := range node.IncompatibleWith {
			if _, ok := selected[other]; !ok {
				continue
			}
			a, b := id, other
			if b < a {
				a, b = b, a
			}
			incompatiblePairs[[2]int64{a, b}] = true
		}
	}

	for pair := range incompatiblePairs {
		violations = append(violations,
			domain.NewViolation("addOnIds", domain.CodeIncompatible,
				"add-ons %d and %d cannot be selected together", pair[0], pair[1]).
				WithContext("addOnIdA", pair[0]).
				WithContext("addOnIdB", pair[1]))
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Message < violations[j].Message
	})

	return violations, nil
}

// WouldCreateCycle reports whether adding newPrerequisiteID as a
// prerequisite of nodeID would close a cycle. BFS over prerequisite
// edges with a visited set, O(V+E).
func (g *Graph) WouldCreateCycle(ctx context.Context, nodeID, newPrerequisiteID int64) (bool, error) {
	if nodeID == newPrerequisiteID {
		return true, nil
	}

	visited := map[int64]bool{newPrerequisiteID: true}
	queue := []int64{newPrerequisiteID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node, err := g.store.Get(ctx, current)
		if err != nil {
			if errors.Is(err, ErrAddOnNotFound) {
				continue
			}
			return false, fmt.Errorf("%w: get add-on %d: %v", ErrStore, current, err)
		}

		for _, prereq := range node.Prerequisites {
			if prereq == nodeID {
				return true, nil
			}
			if !visited[prereq] {
				visited[prereq] = true
				queue = append(queue, prereq)
			}
		}
	}

	return false, nil
}
