package extension

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMetrics(t *testing.T) {
	registry := newTestRegistry(t)
	m := NewMetrics(prometheus.NewRegistry())
	registry.SetMetrics(m)
	ctx := context.Background()

	require.NoError(t, registry.Register(ctx, validDescriptor("p1")))
	require.Error(t, registry.Register(ctx, validDescriptor("p1")))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PluginsRegistered))

	require.NoError(t, registry.Unregister(ctx, "p1"))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UnregistrationsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.PluginsRegistered))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.recordRegistration("success")
	m.recordUnregistration()
	m.setRegistered(3)
	m.observeNotify(0.1)
	m.setSubscribers(1)
}
