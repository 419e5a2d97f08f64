package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/extension/i18n"
	"github.com/hostpanel/hostpanel/pkg/extension/views"
	"github.com/hostpanel/hostpanel/pkg/httputil"
	"github.com/hostpanel/hostpanel/pkg/observability"
)

// PermissionsHeader carries the caller's held permissions, supplied by the
// external authentication layer.
const PermissionsHeader = "X-User-Permissions"

// Server serves the plugin registry and its derived UI views.
type Server struct {
	registry *extension.Registry
	views    *views.Views
	catalog  *i18n.Catalog
	router   *mux.Router
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// NewServer creates the API server. metrics may be nil to disable request
// instrumentation.
func NewServer(registry *extension.Registry, catalog *i18n.Catalog, logger *observability.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		registry: registry,
		views:    views.New(registry),
		catalog:  catalog,
		router:   mux.NewRouter(),
		logger:   logger,
		metrics:  metrics,
	}
	s.setupRoutes()
	return s
}

// Close releases the server's registry subscription.
func (s *Server) Close() {
	s.views.Close()
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Plugin management
	s.router.HandleFunc("/api/v1/plugins", s.listPlugins).Methods("GET")
	s.router.HandleFunc("/api/v1/plugins", s.registerPlugin).Methods("POST")
	s.router.HandleFunc("/api/v1/plugins/loadstate", s.getLoadState).Methods("GET")
	s.router.HandleFunc("/api/v1/plugins/{name}", s.getPlugin).Methods("GET")
	s.router.HandleFunc("/api/v1/plugins/{name}", s.unregisterPlugin).Methods("DELETE")

	// UI consumption views
	s.router.HandleFunc("/api/v1/ui/menu", s.getMenu).Methods("GET")
	s.router.HandleFunc("/api/v1/ui/widgets", s.getWidgets).Methods("GET")
	s.router.HandleFunc("/api/v1/ui/routes", s.getRoutes).Methods("GET")
	s.router.HandleFunc("/api/v1/ui/extension-points", s.getExtensionPoints).Methods("GET")
	s.router.HandleFunc("/api/v1/ui/extensions/{point}", s.getExtensions).Methods("GET")

	// Translations
	s.router.HandleFunc("/api/v1/i18n/{locale}/{domain}", s.getCatalog).Methods("GET")
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
	}
	if s.metrics != nil {
		middlewares = append(middlewares, s.metrics.Middleware)
	}
	return httputil.Chain(middlewares...)(s.router)
}

// Router exposes the raw router, for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// heldPermissions parses the caller's permission list from the request.
func heldPermissions(r *http.Request) []extension.Permission {
	header := r.Header.Get(PermissionsHeader)
	if header == "" {
		return nil
	}

	var held []extension.Permission
	for _, name := range strings.Split(header, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			held = append(held, extension.Permission{Name: name})
		}
	}
	return held
}
