// Package hierarchy implements the category tree engine: assembling a
// nested forest from flat query results and validating structural
// invariants (depth limit, acyclicity, parent existence) before mutations.
package hierarchy

import "navhub/internal/models"

// node links a category row to its children while the forest is assembled.
type node struct {
	cat      models.Category
	children []*node
}

// BuildTree turns a flat list of categories into an ordered forest.
//
// A category is a root when it has no parent OR when its parent is missing
// from the input set — the latter matters for filtered listings, where a
// surviving child of a filtered-out parent still has to appear somewhere.
// Children keep the order of the input list, which callers pre-sort in the
// desired sibling order. Every returned node, leaves included, carries a
// non-nil Children slice.
func BuildTree(flat []models.Category) []models.Category {
	if len(flat) == 0 {
		return []models.Category{}
	}

	nodes := make([]*node, len(flat))
	byID := make(map[int64]*node, len(flat))
	for i, c := range flat {
		nodes[i] = &node{cat: c}
		byID[c.ID] = nodes[i]
	}

	var roots []*node
	for _, n := range nodes {
		if n.cat.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[*n.cat.ParentID]
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent.children = append(parent.children, n)
	}

	forest := make([]models.Category, len(roots))
	for i, r := range roots {
		forest[i] = materialize(r)
	}
	return forest
}

// materialize copies a node subtree into plain Category values.
func materialize(n *node) models.Category {
	c := n.cat
	c.Children = make([]models.Category, len(n.children))
	for i, child := range n.children {
		c.Children[i] = materialize(child)
	}
	return c
}
