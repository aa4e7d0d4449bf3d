package domain

// AddOnNode describes a selectable add-on item and its constraint edges.
// Prerequisites are directed (node requires each listed id); incompatibility
// is symmetric (declared on either side).
type AddOnNode struct {
	ID               int64
	Prerequisites    []int64
	IncompatibleWith []int64
}

// RequiresSelf returns true if the node lists itself as a prerequisite.
func (n *AddOnNode) RequiresSelf() bool {
	for _, id := range n.Prerequisites {
		if id == n.ID {
			return true
		}
	}
	return false
}

// ConflictsWithSelf returns true if the node lists itself as incompatible.
func (n *AddOnNode) ConflictsWithSelf() bool {
	for _, id := range n.IncompatibleWith {
		if id == n.ID {
			return true
		}
	}
	return false
}
