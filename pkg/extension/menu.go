package extension

import "sort"

// BuildMenuTree reconstructs the menu hierarchy from a flat, possibly
// out-of-order list of menu items.
//
// Items are stable-sorted ascending by Order (missing order counts as 0),
// then attached to their parents by ID. Parent is a weak reference: an item
// whose parent does not resolve is promoted to a root node and appended
// after the plain roots. Children inherit the post-sort relative order, so
// the builder is idempotent over its own flattened output.
//
// Input items are never mutated; the returned tree is built from copies.
func BuildMenuTree(items []MenuItem) []*MenuItem {
	sorted := make([]*MenuItem, 0, len(items))
	for _, item := range items {
		copied := item
		copied.Children = nil
		sorted = append(sorted, &copied)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	byID := make(map[string]*MenuItem, len(sorted))
	for _, node := range sorted {
		byID[node.ID] = node
	}

	roots := make([]*MenuItem, 0, len(sorted))
	for _, node := range sorted {
		if node.Parent == "" {
			roots = append(roots, node)
		}
	}

	// Dangling parents promote the item to a root, after the plain roots.
	for _, node := range sorted {
		if node.Parent == "" {
			continue
		}
		if parent, ok := byID[node.Parent]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// FlattenMenuTree is the inverse of BuildMenuTree: it returns the flat item
// list with parent metadata intact. Nodes keep the Parent value they were
// registered with, including dangling references, so building the tree again
// reproduces the same structure.
func FlattenMenuTree(roots []*MenuItem) []MenuItem {
	var flat []MenuItem
	var walk func(node *MenuItem)
	walk = func(node *MenuItem) {
		item := *node
		item.Children = nil
		flat = append(flat, item)
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return flat
}
