package contrib

import (
	"context"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

// HostsPlugin contributes the core host inventory surface: the hosts pages,
// the top-level Hosts menu and the dashboard status widgets.
func HostsPlugin() *extension.Descriptor {
	return &extension.Descriptor{
		Name:        "hostpanel_hosts",
		Version:     "1.0.0",
		DisplayName: "Hosts",
		Description: "Host inventory, details and bulk operations",
		Author:      "Host Panel",
		Routes: []extension.Route{
			{
				Path:        "/hosts",
				Component:   extension.ComponentRef{Module: "hosts", Export: "HostIndexPage"},
				Permissions: []string{"view_hosts"},
			},
			{
				Path:        "/hosts/:id",
				Component:   extension.ComponentRef{Module: "hosts", Export: "HostDetailsPage"},
				Permissions: []string{"view_hosts"},
			},
		},
		MenuItems: []extension.MenuItem{
			{ID: "hosts", LabelKey: "menu.hosts", Order: 10, Permissions: []string{"view_hosts"}},
			{ID: "hosts-all", LabelKey: "menu.all_hosts", Path: "/hosts", Parent: "hosts", Order: 10, Permissions: []string{"view_hosts"}},
			{ID: "hosts-groups", LabelKey: "menu.host_groups", Path: "/hosts/groups", Parent: "hosts", Order: 20, Permissions: []string{"view_hostgroups"}},
		},
		Permissions: []extension.Permission{
			{Name: "view_hosts", Description: "View hosts and host details"},
			{Name: "edit_hosts", Description: "Edit and delete hosts"},
			{Name: "view_hostgroups", Description: "View host groups"},
		},
		ComponentExtensions: []extension.ComponentExtension{
			{
				ExtensionPoint: extension.PointHostDetailsTabs,
				Component:      extension.ComponentRef{Module: "hosts", Export: "FactsTab"},
				Order:          10,
				TitleKey:       "tabs.facts",
			},
			{
				ExtensionPoint: extension.PointHostBulkActions,
				Component:      extension.ComponentRef{Module: "hosts", Export: "BulkDeleteAction"},
				Order:          100,
				Permissions:    []string{"edit_hosts"},
			},
		},
		DashboardWidgets: []extension.DashboardWidget{
			{
				ID:          "host-status",
				TitleKey:    "widgets.host_status",
				Component:   extension.ComponentRef{Module: "hosts", Export: "HostStatusWidget"},
				Size:        extension.WidgetMedium,
				Permissions: []string{"view_hosts"},
			},
		},
		I18n: &i18n.Config{
			DefaultLocale:    "en",
			SupportedLocales: []string{"en", "de", "fr"},
			Keys: map[string]string{
				"menu.hosts":         "Hosts",
				"menu.all_hosts":     "All Hosts",
				"menu.host_groups":   "Host Groups",
				"tabs.facts":         "Facts",
				"widgets.host_status": "Host Status",
			},
		},
	}
}

// ReportsPlugin contributes the reporting pages and the configuration
// status dashboard widget.
func ReportsPlugin() *extension.Descriptor {
	return &extension.Descriptor{
		Name:        "hostpanel_reports",
		Version:     "1.0.0",
		DisplayName: "Reports",
		Description: "Configuration reports and audit trails",
		Author:      "Host Panel",
		Routes: []extension.Route{
			{
				Path:        "/reports",
				Component:   extension.ComponentRef{Module: "reports", Export: "ReportIndexPage"},
				Permissions: []string{"view_reports"},
			},
		},
		MenuItems: []extension.MenuItem{
			{ID: "monitor", LabelKey: "menu.monitor", Order: 20},
			{ID: "monitor-reports", LabelKey: "menu.reports", Path: "/reports", Parent: "monitor", Order: 10, Permissions: []string{"view_reports"}},
		},
		Permissions: []extension.Permission{
			{Name: "view_reports", Description: "View configuration reports"},
		},
		ComponentExtensions: []extension.ComponentExtension{
			{
				ExtensionPoint: extension.PointHostDetailsTabs,
				Component:      extension.ComponentRef{Module: "reports", Export: "ReportsTab"},
				Order:          20,
				TitleKey:       "tabs.reports",
				Permissions:    []string{"view_reports"},
				// The tab only applies to hosts that have reported at
				// least once.
				Condition: func(rctx extension.RenderContext) bool {
					reported, ok := rctx["has_reports"].(bool)
					return ok && reported
				},
			},
		},
		DashboardWidgets: []extension.DashboardWidget{
			{
				ID:          "config-status",
				TitleKey:    "widgets.config_status",
				Component:   extension.ComponentRef{Module: "reports", Export: "ConfigStatusWidget"},
				Size:        extension.WidgetLarge,
				Permissions: []string{"view_reports"},
			},
		},
		I18n: &i18n.Config{
			DefaultLocale:    "en",
			SupportedLocales: []string{"en", "de"},
			Keys: map[string]string{
				"menu.monitor":          "Monitor",
				"menu.reports":          "Reports",
				"tabs.reports":          "Reports",
				"widgets.config_status": "Configuration Status",
			},
		},
	}
}

// RegisterBuiltins registers every built-in plugin, stopping at the first
// failure.
func RegisterBuiltins(ctx context.Context, registry *extension.Registry) error {
	for _, d := range []*extension.Descriptor{HostsPlugin(), ReportsPlugin()} {
		if err := registry.Register(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
