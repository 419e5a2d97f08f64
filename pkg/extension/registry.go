package extension

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
)

// Registry is the sole owner of the plugin descriptor map and load state.
//
// It is an explicit instance: create one with NewRegistry at bootstrap, pass
// it by injection, and release it with Close. Register and Unregister are
// serialized per plugin name; operations on distinct names do not block one
// another.
type Registry struct {
	translations *i18n.Loader
	log          *logrus.Logger
	metrics      *Metrics

	api  APIClient
	user *User

	ops *keyedMutex

	mu      sync.RWMutex
	plugins map[string]*Descriptor
	order   []string // registration order, drives ordering tie-breaks
	state   LoadState
	closed  bool

	subMu sync.RWMutex
	subs  map[string]func()
}

// NewRegistry creates an empty registry. translations may be nil to disable
// catalog loading; log may be nil for a default logger.
func NewRegistry(translations *i18n.Loader, log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
	}
	return &Registry{
		translations: translations,
		log:          log,
		ops:          newKeyedMutex(),
		plugins:      make(map[string]*Descriptor),
		subs:         make(map[string]func()),
	}
}

// SetMetrics attaches Prometheus metrics. Call before the first Register.
func (r *Registry) SetMetrics(m *Metrics) {
	r.metrics = m
}

// SetAPIClient supplies the backend client handed to plugin Initialize
// callbacks.
func (r *Registry) SetAPIClient(api APIClient) {
	r.api = api
}

// SetCurrentUser supplies the session user handed to plugin Initialize
// callbacks.
func (r *Registry) SetCurrentUser(u *User) {
	r.user = u
}

// Register validates and installs a plugin descriptor.
//
// The descriptor becomes visible through queries before Initialize runs, so
// synchronous lookups during initialization see the plugin as present. When
// Initialize fails the descriptor is rolled back out of the map, the failure
// is recorded in the load state, and the error is returned. Translation
// loading is best-effort and never fails a registration. Subscribers are
// notified synchronously on success.
func (r *Registry) Register(ctx context.Context, d *Descriptor) error {
	if d == nil {
		return &ValidationError{Field: "descriptor", Message: "descriptor is required"}
	}

	if err := d.validate(); err != nil {
		r.recordFailure(d.Name, err)
		r.metrics.recordRegistration("invalid")
		return err
	}

	unlock := r.ops.lock(d.Name)
	defer unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	if _, exists := r.plugins[d.Name]; exists {
		r.mu.Unlock()
		err := &ValidationError{
			Plugin:  d.Name,
			Field:   "name",
			Message: fmt.Sprintf("plugin %q is already registered", d.Name),
		}
		r.recordFailure(d.Name, err)
		r.metrics.recordRegistration("duplicate")
		return err
	}
	r.plugins[d.Name] = d
	r.order = append(r.order, d.Name)
	r.state.Loading = true
	r.mu.Unlock()

	if r.translations != nil && d.I18n != nil {
		if err := r.translations.Load(ctx, d.Name, d.I18n); err != nil {
			r.log.WithField("plugin", d.Name).Warnf("Translation loading failed: %v", err)
		}
	}

	if d.Initialize != nil {
		ic := &InitContext{
			Registry:    r,
			API:         r.api,
			CurrentUser: r.user,
			T:           r.translator(d),
			Navigate:    func(string) error { return nil },
		}
		if err := invokeInitialize(ctx, d, ic); err != nil {
			initErr := &InitializationError{Plugin: d.Name, Err: err}
			r.rollback(d)
			r.recordFailure(d.Name, initErr)
			r.metrics.recordRegistration("init_failed")
			r.log.WithField("plugin", d.Name).Errorf("Plugin initialization failed: %v", err)
			return initErr
		}
	}

	r.mu.Lock()
	r.state.Loaded = append(r.state.Loaded, d.Name)
	r.state.Loading = false
	count := len(r.plugins)
	r.mu.Unlock()

	r.metrics.recordRegistration("success")
	r.metrics.setRegistered(count)
	r.log.Infof("Registered plugin: %s v%s", d.Name, d.Version)

	r.notify()
	return nil
}

// Unregister removes a plugin and all of its contributions. Unknown names
// resolve silently. A failing Destroy callback propagates to the caller and
// leaves the descriptor in place.
func (r *Registry) Unregister(ctx context.Context, name string) error {
	unlock := r.ops.lock(name)
	defer unlock()

	r.mu.RLock()
	d, ok := r.plugins[name]
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return ErrRegistryClosed
	}
	if !ok {
		return nil
	}

	if d.Destroy != nil {
		if err := invokeDestroy(ctx, d); err != nil {
			return &InitializationError{Plugin: name, Err: err}
		}
	}

	if r.translations != nil && d.I18n != nil {
		r.translations.Remove(d.Namespace())
	}

	r.mu.Lock()
	delete(r.plugins, name)
	r.order = removeString(r.order, name)
	r.state.Loaded = removeString(r.state.Loaded, name)
	r.state.Failed = removeFailures(r.state.Failed, name)
	count := len(r.plugins)
	r.mu.Unlock()

	r.metrics.recordUnregistration()
	r.metrics.setRegistered(count)
	r.log.Infof("Unregistered plugin: %s", name)

	r.notify()
	return nil
}

// Close tears the registry down: every plugin is unregistered (running its
// Destroy callback) and further writes are rejected. Destroy failures are
// logged and do not stop the teardown.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.RLock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	r.mu.RUnlock()

	// Reverse registration order, so later plugins release their
	// dependencies on earlier ones first.
	for i := len(names) - 1; i >= 0; i-- {
		if err := r.Unregister(ctx, names[i]); err != nil {
			r.log.WithField("plugin", names[i]).Warnf("Destroy failed during close: %v", err)
			r.forceRemove(names[i])
		}
	}

	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.subMu.Lock()
	r.subs = make(map[string]func())
	r.subMu.Unlock()
	r.metrics.setSubscribers(0)
	return nil
}

// Plugin returns a registered descriptor, or nil when the name is unknown.
func (r *Registry) Plugin(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins[name]
}

// IsRegistered reports whether a plugin name is currently registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.plugins[name]
	return ok
}

// AllPlugins returns every registered descriptor in registration order.
func (r *Registry) AllPlugins() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.plugins[name])
	}
	return result
}

// PluginsWithRoutes returns the plugins contributing at least one route.
func (r *Registry) PluginsWithRoutes() []*Descriptor {
	return r.pluginsWhere(func(d *Descriptor) bool { return len(d.Routes) > 0 })
}

// PluginsWithMenuItems returns the plugins contributing menu entries.
func (r *Registry) PluginsWithMenuItems() []*Descriptor {
	return r.pluginsWhere(func(d *Descriptor) bool { return len(d.MenuItems) > 0 })
}

// PluginsWithWidgets returns the plugins contributing dashboard widgets.
func (r *Registry) PluginsWithWidgets() []*Descriptor {
	return r.pluginsWhere(func(d *Descriptor) bool { return len(d.DashboardWidgets) > 0 })
}

// ExtensionsFor returns every extension registered against the point, sorted
// ascending by order with a missing order treated as 0. Ties keep
// registration order, then declaration order within a plugin. Plugins depend
// on this ordering for deterministic slot placement.
func (r *Registry) ExtensionsFor(point string) []OwnedExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []OwnedExtension
	for _, name := range r.order {
		for _, ext := range r.plugins[name].ComponentExtensions {
			if ext.ExtensionPoint == point {
				result = append(result, OwnedExtension{Plugin: name, ComponentExtension: ext})
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result
}

// DashboardWidgets returns every widget in registration order, decorated
// with its owning plugin.
func (r *Registry) DashboardWidgets() []OwnedWidget {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []OwnedWidget
	for _, name := range r.order {
		for _, widget := range r.plugins[name].DashboardWidgets {
			result = append(result, OwnedWidget{Plugin: name, DashboardWidget: widget})
		}
	}
	return result
}

// Routes returns every route in registration order, decorated with the
// owning plugin's name and display name for downstream attribution.
func (r *Registry) Routes() []OwnedRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []OwnedRoute
	for _, name := range r.order {
		d := r.plugins[name]
		for _, route := range d.Routes {
			result = append(result, OwnedRoute{
				Plugin:            name,
				PluginDisplayName: d.DisplayName,
				Route:             route,
			})
		}
	}
	return result
}

// MenuItems returns every registered menu item in registration order.
func (r *Registry) MenuItems() []MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []MenuItem
	for _, name := range r.order {
		result = append(result, r.plugins[name].MenuItems...)
	}
	return result
}

// LoadState returns a snapshot copy of the load state. The slices are
// copied so callers cannot mutate registry internals.
func (r *Registry) LoadState() LoadState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := LoadState{
		Loading: r.state.Loading,
		Loaded:  make([]string, len(r.state.Loaded)),
		Failed:  make([]LoadFailure, len(r.state.Failed)),
	}
	copy(snapshot.Loaded, r.state.Loaded)
	copy(snapshot.Failed, r.state.Failed)
	return snapshot
}

// TranslationConfigs returns the locale configuration of every registered
// plugin, keyed by plugin name. Implements i18n.ConfigSource.
func (r *Registry) TranslationConfigs() map[string]*i18n.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*i18n.Config)
	for name, d := range r.plugins {
		if d.I18n != nil {
			result[name] = d.I18n
		}
	}
	return result
}

// Subscribe registers a zero-argument callback invoked synchronously after
// every successful register or unregister. No payload is passed: subscribers
// re-query the registry, which is cheaper than diffing. The returned
// function removes the subscription.
func (r *Registry) Subscribe(fn func()) (unsubscribe func()) {
	id := uuid.NewString()

	r.subMu.Lock()
	r.subs[id] = fn
	count := len(r.subs)
	r.subMu.Unlock()
	r.metrics.setSubscribers(count)

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		count := len(r.subs)
		r.subMu.Unlock()
		r.metrics.setSubscribers(count)
	}
}

func (r *Registry) pluginsWhere(match func(*Descriptor) bool) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Descriptor
	for _, name := range r.order {
		if d := r.plugins[name]; match(d) {
			result = append(result, d)
		}
	}
	return result
}

func (r *Registry) translator(d *Descriptor) i18n.TranslateFunc {
	if r.translations == nil || d.I18n == nil {
		return func(key string) string { return key }
	}
	return r.translations.Catalog().Translator(d.Namespace(), d.I18n.DefaultLocale)
}

// rollback removes a descriptor that failed mid-registration, including any
// translations that were already loaded for it.
func (r *Registry) rollback(d *Descriptor) {
	if r.translations != nil && d.I18n != nil {
		r.translations.Remove(d.Namespace())
	}
	r.forceRemove(d.Name)
}

func (r *Registry) forceRemove(name string) {
	r.mu.Lock()
	delete(r.plugins, name)
	r.order = removeString(r.order, name)
	r.state.Loaded = removeString(r.state.Loaded, name)
	r.mu.Unlock()
}

func (r *Registry) recordFailure(name string, err error) {
	r.mu.Lock()
	r.state.Failed = append(r.state.Failed, LoadFailure{Name: name, Err: err})
	r.state.Loading = false
	r.mu.Unlock()
}

// notify invokes every subscriber synchronously, on the same goroutine as
// the state change. Subscribers must not assume deferred delivery.
func (r *Registry) notify() {
	r.subMu.RLock()
	callbacks := make([]func(), 0, len(r.subs))
	for _, fn := range r.subs {
		callbacks = append(callbacks, fn)
	}
	r.subMu.RUnlock()

	start := time.Now()
	for _, fn := range callbacks {
		fn()
	}
	r.metrics.observeNotify(time.Since(start).Seconds())
}

// invokeInitialize runs a plugin's Initialize, converting a panic in the
// plugin's code into an error so a misbehaving plugin cannot crash the host.
func invokeInitialize(ctx context.Context, d *Descriptor, ic *InitContext) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("initialize panicked: %v", rec)
		}
	}()
	return d.Initialize(ctx, ic)
}

func invokeDestroy(ctx context.Context, d *Descriptor) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("destroy panicked: %v", rec)
		}
	}()
	return d.Destroy(ctx)
}

func removeString(list []string, value string) []string {
	result := list[:0]
	for _, v := range list {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}

func removeFailures(list []LoadFailure, name string) []LoadFailure {
	result := list[:0]
	for _, f := range list {
		if f.Name != name {
			result = append(result, f)
		}
	}
	return result
}
