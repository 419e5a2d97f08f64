package extension

import (
	"context"

	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

// Well-known extension points. Plugins may register extensions against other
// point names; unknown points are accepted but never served by the host UI.
const (
	PointHostDetailsTabs   = "host-details-tabs"
	PointDashboardWidgets  = "dashboard-widgets"
	PointHostTableColumns  = "host-table-columns"
	PointHostBulkActions   = "host-bulk-actions"
	PointHostOverviewCards = "host-overview-cards"
	PointSettingsTabs      = "settings-tabs"
)

// KnownExtensionPoints lists the extension points the host UI renders.
func KnownExtensionPoints() []string {
	return []string{
		PointHostDetailsTabs,
		PointDashboardWidgets,
		PointHostTableColumns,
		PointHostBulkActions,
		PointHostOverviewCards,
		PointSettingsTabs,
	}
}

// ComponentRef is a capability-typed handle to a renderable unit shipped in
// a plugin bundle: the bundle module plus the exported symbol implementing
// the host's render contract. Refs are validated at registration time so a
// malformed handle is rejected immediately instead of failing at render.
type ComponentRef struct {
	Module string `json:"module" yaml:"module"`
	Export string `json:"export" yaml:"export"`
}

// Valid reports whether the ref names both a module and an export.
func (c ComponentRef) Valid() bool {
	return c.Module != "" && c.Export != ""
}

// Permission names a capability a plugin defines or a contribution requires.
// Visibility checks match on Name only, case-sensitively.
type Permission struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Route is a page contributed by a plugin.
type Route struct {
	Path        string       `json:"path" yaml:"path"`
	Component   ComponentRef `json:"component" yaml:"component"`
	Permissions []string     `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// MenuItem is a navigation entry contributed by a plugin. Parent is a weak
// reference: when it does not resolve, the item becomes a root item.
type MenuItem struct {
	ID          string      `json:"id" yaml:"id"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey    string      `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	Path        string      `json:"path,omitempty" yaml:"path,omitempty"`
	Parent      string      `json:"parent,omitempty" yaml:"parent,omitempty"`
	Order       int         `json:"order,omitempty" yaml:"order,omitempty"`
	Permissions []string    `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	Children    []*MenuItem `json:"children,omitempty" yaml:"-"`
}

// RenderContext is the caller-supplied context a Condition predicate sees,
// e.g. the host record a details tab is rendered for.
type RenderContext map[string]interface{}

// Condition decides whether an extension applies in a given render context.
type Condition func(ctx RenderContext) bool

// ComponentExtension inserts a renderable unit into a named extension point.
type ComponentExtension struct {
	ExtensionPoint string       `json:"extension_point" yaml:"extension_point"`
	Component      ComponentRef `json:"component" yaml:"component"`
	Order          int          `json:"order,omitempty" yaml:"order,omitempty"`
	Permissions    []string     `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	Condition      Condition    `json:"-" yaml:"-"`
	Title          string       `json:"title,omitempty" yaml:"title,omitempty"`
	TitleKey       string       `json:"title_key,omitempty" yaml:"title_key,omitempty"`
}

// WidgetSize is the dashboard grid footprint of a widget.
type WidgetSize string

const (
	WidgetSmall  WidgetSize = "small"
	WidgetMedium WidgetSize = "medium"
	WidgetLarge  WidgetSize = "large"
)

// DashboardWidget is a dashboard card contributed by a plugin.
type DashboardWidget struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	TitleKey    string       `json:"title_key,omitempty" yaml:"title_key,omitempty"`
	Component   ComponentRef `json:"component" yaml:"component"`
	Size        WidgetSize   `json:"size,omitempty" yaml:"size,omitempty"`
	Permissions []string     `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// User identifies the current dashboard user, as supplied by the external
// authentication collaborator.
type User struct {
	ID          string       `json:"id"`
	Login       string       `json:"login"`
	Permissions []Permission `json:"permissions"`
}

// APIClient is the host's backend client handed to plugin lifecycle
// callbacks. The concrete transport lives outside this package.
type APIClient interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

// InitContext is passed to a plugin's Initialize callback.
type InitContext struct {
	// Registry is a back-reference for inter-plugin coordination; the
	// registering plugin is already visible through it.
	Registry *Registry
	// API is the host's backend client, when one was supplied at bootstrap.
	API APIClient
	// CurrentUser is the user the dashboard session belongs to, if known.
	CurrentUser *User
	// T translates keys within the plugin's own namespace.
	T i18n.TranslateFunc
	// Navigate asks the host shell to route to a path.
	Navigate func(path string) error
}

// Descriptor is the unit of registration: a plugin's identity plus its
// contribution lists and lifecycle callbacks.
type Descriptor struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	DisplayName  string `json:"display_name" yaml:"display_name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Author       string `json:"author,omitempty" yaml:"author,omitempty"`
	HostVersions string `json:"host_versions,omitempty" yaml:"host_versions,omitempty"`

	Routes              []Route              `json:"routes,omitempty" yaml:"routes,omitempty"`
	MenuItems           []MenuItem           `json:"menu_items,omitempty" yaml:"menu_items,omitempty"`
	Permissions         []Permission         `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	ComponentExtensions []ComponentExtension `json:"component_extensions,omitempty" yaml:"component_extensions,omitempty"`
	DashboardWidgets    []DashboardWidget    `json:"dashboard_widgets,omitempty" yaml:"dashboard_widgets,omitempty"`
	I18n                *i18n.Config         `json:"i18n,omitempty" yaml:"i18n,omitempty"`

	Initialize func(ctx context.Context, ic *InitContext) error `json:"-" yaml:"-"`
	Destroy    func(ctx context.Context) error                  `json:"-" yaml:"-"`
}

// Namespace returns the translation namespace the descriptor's catalogs are
// stored under.
func (d *Descriptor) Namespace() string {
	return i18n.Namespace(d.Name, d.I18n)
}

// LoadFailure records a plugin that failed to register.
type LoadFailure struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// Error returns the failure message, for JSON consumers.
func (f LoadFailure) Error() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// LoadState is the process-wide record of plugin load outcomes. Registry
// consumers always receive a snapshot copy.
type LoadState struct {
	Loading bool          `json:"loading"`
	Loaded  []string      `json:"loaded"`
	Failed  []LoadFailure `json:"failed"`
}

// OwnedExtension is a component extension decorated with its owning plugin.
type OwnedExtension struct {
	Plugin string `json:"plugin"`
	ComponentExtension
}

// OwnedWidget is a dashboard widget decorated with its owning plugin.
type OwnedWidget struct {
	Plugin string `json:"plugin"`
	DashboardWidget
}

// OwnedRoute is a route decorated with its owning plugin so downstream
// permission and audit logic can attribute it to its source.
type OwnedRoute struct {
	Plugin            string `json:"plugin"`
	PluginDisplayName string `json:"plugin_display_name"`
	Route
}
