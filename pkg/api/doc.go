// Package api exposes the plugin registry and its derived views over HTTP.
//
// # Overview
//
// The dashboard SPA discovers plugin contributions through this API: the
// registered plugins, the permission-filtered menu tree, dashboard widgets,
// extension-point contents, routes, and per-plugin translation catalogs.
//
// Authentication is an external collaborator: the caller's held permissions
// arrive as a comma-separated list in the X-User-Permissions header, and
// visibility filtering is applied server-side with the same rules the
// registry publishes to in-process consumers.
//
// # Endpoints
//
//	GET    /api/v1/plugins
//	POST   /api/v1/plugins
//	GET    /api/v1/plugins/loadstate
//	GET    /api/v1/plugins/{name}
//	DELETE /api/v1/plugins/{name}
//	GET    /api/v1/ui/menu
//	GET    /api/v1/ui/widgets
//	GET    /api/v1/ui/routes
//	GET    /api/v1/ui/extension-points
//	GET    /api/v1/ui/extensions/{point}
//	GET    /api/v1/i18n/{locale}/{domain}
package api
