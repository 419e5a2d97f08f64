package extension

import "fmt"

// validate checks the structural contract of a descriptor. Duplicate-name
// detection happens later, under the registry lock.
func (d *Descriptor) validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "plugin name is required"}
	}
	if d.Version == "" {
		return &ValidationError{Plugin: d.Name, Field: "version", Message: "plugin version is required"}
	}
	if d.DisplayName == "" {
		return &ValidationError{Plugin: d.Name, Field: "display_name", Message: "plugin display name is required"}
	}

	for i, route := range d.Routes {
		if route.Path == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("routes[%d].path", i),
				Message: "route path is required",
			}
		}
		if !route.Component.Valid() {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("routes[%d].component", i),
				Message: "route component must name a module and an export",
			}
		}
	}

	for i, item := range d.MenuItems {
		if item.ID == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("menu_items[%d].id", i),
				Message: "menu item id is required",
			}
		}
		if item.Label == "" && item.LabelKey == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("menu_items[%d]", i),
				Message: "menu item requires a label or a label key",
			}
		}
	}

	for i, ext := range d.ComponentExtensions {
		if ext.ExtensionPoint == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("component_extensions[%d].extension_point", i),
				Message: "extension point name is required",
			}
		}
		if !ext.Component.Valid() {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("component_extensions[%d].component", i),
				Message: "extension component must name a module and an export",
			}
		}
	}

	for i, widget := range d.DashboardWidgets {
		if widget.ID == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("dashboard_widgets[%d].id", i),
				Message: "widget id is required",
			}
		}
		if widget.Title == "" && widget.TitleKey == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("dashboard_widgets[%d]", i),
				Message: "widget requires a title or a title key",
			}
		}
		if !widget.Component.Valid() {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("dashboard_widgets[%d].component", i),
				Message: "widget component must name a module and an export",
			}
		}
		switch widget.Size {
		case "", WidgetSmall, WidgetMedium, WidgetLarge:
		default:
			return &ValidationError{
				Plugin:  d.Name,
				Field:   fmt.Sprintf("dashboard_widgets[%d].size", i),
				Message: fmt.Sprintf("unknown widget size %q", widget.Size),
			}
		}
	}

	if cfg := d.I18n; cfg != nil {
		if cfg.DefaultLocale == "" {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   "i18n.default_locale",
				Message: "default locale is required",
			}
		}
		if len(cfg.SupportedLocales) == 0 {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   "i18n.supported_locales",
				Message: "at least one supported locale is required",
			}
		}
		if len(cfg.Keys) == 0 {
			return &ValidationError{
				Plugin:  d.Name,
				Field:   "i18n.keys",
				Message: "at least one translation key is required",
			}
		}
	}

	return nil
}
