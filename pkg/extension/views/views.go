package views

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hostpanel/hostpanel/pkg/extension"
)

const (
	extensionCacheSize = 256
	extensionCacheTTL  = 5 * time.Minute
)

// Views computes derived, memoized projections of the registry for the
// rendering layer. Create one per consumer surface and release it with
// Close.
type Views struct {
	registry    *extension.Registry
	unsubscribe func()
	rev         atomic.Uint64

	mu      sync.Mutex
	plugins memo[[]*extension.Descriptor]
	menu    memo[[]*extension.MenuItem]
	widgets memo[[]extension.OwnedWidget]
	routes  memo[[]extension.OwnedRoute]

	extensions *lru.LRU[string, []extension.OwnedExtension]
}

type memo[T any] struct {
	rev   uint64
	valid bool
	value T
}

// New creates a Views bound to the registry and subscribes to its change
// channel.
func New(registry *extension.Registry) *Views {
	v := &Views{
		registry:   registry,
		extensions: lru.NewLRU[string, []extension.OwnedExtension](extensionCacheSize, nil, extensionCacheTTL),
	}
	v.unsubscribe = registry.Subscribe(func() {
		v.rev.Add(1)
	})
	return v
}

// Close unsubscribes from the registry.
func (v *Views) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Revision returns the current change revision. It increases by one for
// every registry notification observed.
func (v *Views) Revision() uint64 {
	return v.rev.Load()
}

// AllPlugins returns every registered plugin in registration order.
func (v *Views) AllPlugins() []*extension.Descriptor {
	rev := v.rev.Load()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.plugins.valid && v.plugins.rev == rev {
		return v.plugins.value
	}
	v.plugins = memo[[]*extension.Descriptor]{rev: rev, valid: true, value: v.registry.AllPlugins()}
	return v.plugins.value
}

// Plugin returns one registered plugin, or nil when absent. An absent
// plugin and a registered-but-empty one look the same to consumers.
func (v *Views) Plugin(name string) *extension.Descriptor {
	for _, d := range v.AllPlugins() {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// ExtensionsFor returns the sorted extensions for a point, memoized per
// (revision, point).
func (v *Views) ExtensionsFor(point string) []extension.OwnedExtension {
	key := fmt.Sprintf("%d|%s", v.rev.Load(), point)
	if cached, ok := v.extensions.Get(key); ok {
		return cached
	}
	exts := v.registry.ExtensionsFor(point)
	v.extensions.Add(key, exts)
	return exts
}

// MenuTree returns the sorted menu hierarchy built from every plugin's menu
// contributions.
func (v *Views) MenuTree() []*extension.MenuItem {
	rev := v.rev.Load()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.menu.valid && v.menu.rev == rev {
		return v.menu.value
	}
	v.menu = memo[[]*extension.MenuItem]{rev: rev, valid: true, value: extension.BuildMenuTree(v.registry.MenuItems())}
	return v.menu.value
}

// DashboardWidgets returns every widget with its owning plugin.
func (v *Views) DashboardWidgets() []extension.OwnedWidget {
	rev := v.rev.Load()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.widgets.valid && v.widgets.rev == rev {
		return v.widgets.value
	}
	v.widgets = memo[[]extension.OwnedWidget]{rev: rev, valid: true, value: v.registry.DashboardWidgets()}
	return v.widgets.value
}

// Routes returns every route decorated with its owning plugin's name and
// display name.
func (v *Views) Routes() []extension.OwnedRoute {
	rev := v.rev.Load()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.routes.valid && v.routes.rev == rev {
		return v.routes.value
	}
	v.routes = memo[[]extension.OwnedRoute]{rev: rev, valid: true, value: v.registry.Routes()}
	return v.routes.value
}
