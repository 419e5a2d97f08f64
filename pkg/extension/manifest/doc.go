// Package manifest loads declarative plugin manifests.
//
// A plugin that needs no lifecycle callbacks can be described entirely by a
// plugin.yaml manifest: identity, routes, menu entries, widgets, component
// extensions, defined permissions and bundled translations. The Loader
// discovers manifests under configured plugin directories and registers them
// with the extension registry; the Watcher keeps the registry in sync with
// manifest files appearing, changing or disappearing at runtime.
package manifest
