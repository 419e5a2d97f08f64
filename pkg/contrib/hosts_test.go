package contrib

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

func TestRegisterBuiltins(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	catalog := i18n.NewCatalog()
	registry := extension.NewRegistry(i18n.NewLoader(catalog, nil, log), log)

	require.NoError(t, RegisterBuiltins(context.Background(), registry))

	assert.True(t, registry.IsRegistered("hostpanel_hosts"))
	assert.True(t, registry.IsRegistered("hostpanel_reports"))

	// Both translation namespaces are available after registration.
	assert.Equal(t, "Hosts", catalog.Translate("en", "hostpanel_hosts", "menu.hosts"))
	assert.Equal(t, "Reports", catalog.Translate("en", "hostpanel_reports", "menu.reports"))

	// The host details tab contributions merge across both plugins, sorted
	// ascending by order.
	exts := registry.ExtensionsFor(extension.PointHostDetailsTabs)
	require.Len(t, exts, 2)
	assert.Equal(t, "hostpanel_hosts", exts[0].Plugin)
	assert.Equal(t, "hostpanel_reports", exts[1].Plugin)
}

func TestBuiltinDescriptorsAreValid(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	for _, d := range []*extension.Descriptor{HostsPlugin(), ReportsPlugin()} {
		t.Run(d.Name, func(t *testing.T) {
			registry := extension.NewRegistry(i18n.NewLoader(i18n.NewCatalog(), nil, log), log)
			assert.NoError(t, registry.Register(context.Background(), d))
		})
	}
}

func TestReportsTabCondition(t *testing.T) {
	d := ReportsPlugin()
	require.Len(t, d.ComponentExtensions, 1)
	condition := d.ComponentExtensions[0].Condition
	require.NotNil(t, condition)

	assert.True(t, condition(extension.RenderContext{"has_reports": true}))
	assert.False(t, condition(extension.RenderContext{"has_reports": false}))
	assert.False(t, condition(extension.RenderContext{}))
	assert.False(t, condition(extension.RenderContext{"has_reports": "yes"}))
}
