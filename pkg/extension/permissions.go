package extension

// HasPermissions decides visibility of a permission-gated contribution. An
// empty or nil requirement list is default-open: visible to everyone.
// Otherwise every required permission name must appear among the held
// permissions, matched by Name only, case-sensitively.
func HasPermissions(required []string, held []Permission) bool {
	if len(required) == 0 {
		return true
	}

	for _, name := range required {
		if !holdsPermission(held, name) {
			return false
		}
	}
	return true
}

func holdsPermission(held []Permission, name string) bool {
	for _, p := range held {
		if p.Name == name {
			return true
		}
	}
	return false
}

// FilterExtensions returns the extensions visible to a caller holding the
// given permissions in the given render context. An extension carrying a
// Condition is hidden when rctx is nil: conditional extensions require the
// context their predicate was written against.
func FilterExtensions(exts []OwnedExtension, held []Permission, rctx RenderContext) []OwnedExtension {
	visible := make([]OwnedExtension, 0, len(exts))
	for _, ext := range exts {
		if !HasPermissions(ext.Permissions, held) {
			continue
		}
		if ext.Condition != nil {
			if rctx == nil || !ext.Condition(rctx) {
				continue
			}
		}
		visible = append(visible, ext)
	}
	return visible
}

// FilterRoutes returns the routes visible to a caller holding the given
// permissions.
func FilterRoutes(routes []OwnedRoute, held []Permission) []OwnedRoute {
	visible := make([]OwnedRoute, 0, len(routes))
	for _, route := range routes {
		if HasPermissions(route.Permissions, held) {
			visible = append(visible, route)
		}
	}
	return visible
}

// FilterWidgets returns the widgets visible to a caller holding the given
// permissions.
func FilterWidgets(widgets []OwnedWidget, held []Permission) []OwnedWidget {
	visible := make([]OwnedWidget, 0, len(widgets))
	for _, widget := range widgets {
		if HasPermissions(widget.Permissions, held) {
			visible = append(visible, widget)
		}
	}
	return visible
}

// FilterMenuTree prunes menu nodes the caller may not see. A pruned parent
// drops its whole subtree; visible children of visible parents are kept in
// order.
func FilterMenuTree(roots []*MenuItem, held []Permission) []*MenuItem {
	visible := make([]*MenuItem, 0, len(roots))
	for _, node := range roots {
		if !HasPermissions(node.Permissions, held) {
			continue
		}
		copied := *node
		copied.Children = FilterMenuTree(node.Children, held)
		visible = append(visible, &copied)
	}
	return visible
}
