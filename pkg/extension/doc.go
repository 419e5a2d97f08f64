// Package extension implements the plugin extension registry for the host
// management dashboard.
//
// # Overview
//
// Independently packaged plugins contribute routes, menu entries, dashboard
// widgets, component extensions and translation bundles to the host
// application at runtime. The Registry is the single source of truth for
// which contributions currently exist: it validates descriptors, drives the
// register/unregister lifecycle, indexes extension points, and notifies
// subscribers after every successful change.
//
// # Registry
//
// A Registry is an explicit instance created at application bootstrap and
// torn down with Close; there is no package-level singleton. Register and
// Unregister calls for the same plugin name are serialized, while operations
// on distinct names proceed independently.
//
// # Visibility
//
// Contributions carry optional permission lists. HasPermissions implements
// the AND-of-all visibility check over the caller's held permissions, with
// an empty requirement meaning visible to everyone. Component extensions may
// additionally carry a Condition predicate over caller-supplied render
// context; a conditional extension without render context is hidden.
//
// # Ordering
//
// ExtensionsFor returns extensions sorted ascending by order (missing order
// counts as 0) with ties broken by registration order. Plugins rely on this
// ordering for deterministic slot placement; it is a hard contract.
//
// # Related Packages
//
//   - pkg/extension/i18n: namespaced translation catalogs
//   - pkg/extension/views: memoized derived views over the registry
//   - pkg/extension/manifest: declarative YAML plugin manifests
package extension
