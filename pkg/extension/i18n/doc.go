// Package i18n stores and loads namespaced translation catalogs for plugins.
//
// Every plugin owns a namespace (its translation domain, defaulting to the
// plugin name) so that translation keys never collide across plugins. The
// Catalog holds the merged key/value maps per (locale, namespace) pair and
// resolves lookups through a fallback chain: requested locale, the
// namespace's default locale, and finally the key itself.
//
// The Loader turns a plugin's bundled locale configuration into registered
// catalogs. Remote catalogs are fetched best-effort through a pluggable
// Fetcher and merged over the bundled defaults; translation loading is never
// fatal to plugin registration.
package i18n
