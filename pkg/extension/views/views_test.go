package views

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

func newTestRegistry(t *testing.T) *extension.Registry {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return extension.NewRegistry(i18n.NewLoader(i18n.NewCatalog(), nil, log), log)
}

func register(t *testing.T, registry *extension.Registry, d *extension.Descriptor) {
	t.Helper()
	require.NoError(t, registry.Register(context.Background(), d))
}

func descriptor(name string) *extension.Descriptor {
	return &extension.Descriptor{Name: name, Version: "1.0.0", DisplayName: "Plugin " + name}
}

func TestViewsRevisionTracksChanges(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	assert.Equal(t, uint64(0), v.Revision())

	register(t, registry, descriptor("p1"))
	assert.Equal(t, uint64(1), v.Revision())

	require.NoError(t, registry.Unregister(context.Background(), "p1"))
	assert.Equal(t, uint64(2), v.Revision())
}

func TestViewsAllPluginsMemoized(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	register(t, registry, descriptor("p1"))

	first := v.AllPlugins()
	second := v.AllPlugins()

	// Same revision returns the identical slice, not a fresh computation.
	require.Len(t, first, 1)
	assert.Equal(t, fmt.Sprintf("%p", first), fmt.Sprintf("%p", second))

	register(t, registry, descriptor("p2"))
	third := v.AllPlugins()
	assert.Len(t, third, 2)
}

func TestViewsPlugin(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	register(t, registry, descriptor("p1"))

	require.NotNil(t, v.Plugin("p1"))
	assert.Nil(t, v.Plugin("missing"))
}

func TestViewsExtensionsForCachedPerRevision(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	ref := extension.ComponentRef{Module: "m", Export: "E"}
	d := descriptor("p1")
	d.ComponentExtensions = []extension.ComponentExtension{{
		ExtensionPoint: extension.PointHostDetailsTabs,
		Component:      ref,
		Order:          5,
	}}
	register(t, registry, d)

	first := v.ExtensionsFor(extension.PointHostDetailsTabs)
	require.Len(t, first, 1)

	// A registry change invalidates the cached view through the revision key.
	d2 := descriptor("p2")
	d2.ComponentExtensions = []extension.ComponentExtension{{
		ExtensionPoint: extension.PointHostDetailsTabs,
		Component:      ref,
		Order:          1,
	}}
	register(t, registry, d2)

	second := v.ExtensionsFor(extension.PointHostDetailsTabs)
	require.Len(t, second, 2)
	assert.Equal(t, "p2", second[0].Plugin)
}

func TestViewsMenuTree(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	d := descriptor("p1")
	d.MenuItems = []extension.MenuItem{
		{ID: "hosts", Label: "Hosts", Order: 10},
		{ID: "all", Label: "All", Parent: "hosts"},
	}
	register(t, registry, d)

	tree := v.MenuTree()
	require.Len(t, tree, 1)
	assert.Equal(t, "hosts", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "all", tree[0].Children[0].ID)

	require.NoError(t, registry.Unregister(context.Background(), "p1"))
	assert.Empty(t, v.MenuTree())
}

func TestViewsRoutesDecorated(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	d := descriptor("p1")
	d.Routes = []extension.Route{{Path: "/p1", Component: extension.ComponentRef{Module: "m", Export: "E"}}}
	register(t, registry, d)

	routes := v.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "p1", routes[0].Plugin)
	assert.Equal(t, "Plugin p1", routes[0].PluginDisplayName)
}

func TestViewsDashboardWidgets(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)
	defer v.Close()

	d := descriptor("p1")
	d.DashboardWidgets = []extension.DashboardWidget{{
		ID:        "w1",
		Title:     "Widget",
		Component: extension.ComponentRef{Module: "m", Export: "E"},
	}}
	register(t, registry, d)

	widgets := v.DashboardWidgets()
	require.Len(t, widgets, 1)
	assert.Equal(t, "w1", widgets[0].ID)
	assert.Equal(t, "p1", widgets[0].Plugin)
}

func TestViewsCloseStopsTracking(t *testing.T) {
	registry := newTestRegistry(t)
	v := New(registry)

	register(t, registry, descriptor("p1"))
	require.Equal(t, uint64(1), v.Revision())

	v.Close()
	register(t, registry, descriptor("p2"))
	assert.Equal(t, uint64(1), v.Revision())
}
