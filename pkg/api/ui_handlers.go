package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/httputil"
)

func (s *Server) getExtensionPoints(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, extension.KnownExtensionPoints())
}

func (s *Server) getMenu(w http.ResponseWriter, r *http.Request) {
	tree := s.views.MenuTree()
	filtered := extension.FilterMenuTree(tree, heldPermissions(r))
	httputil.WriteSuccess(w, filtered)
}

func (s *Server) getWidgets(w http.ResponseWriter, r *http.Request) {
	widgets := extension.FilterWidgets(s.views.DashboardWidgets(), heldPermissions(r))
	httputil.WriteSuccess(w, widgets)
}

func (s *Server) getRoutes(w http.ResponseWriter, r *http.Request) {
	routes := extension.FilterRoutes(s.views.Routes(), heldPermissions(r))
	httputil.WriteSuccess(w, routes)
}

// getExtensions serves one extension point's contributions. Render context
// for Condition predicates is supplied as query parameters; conditional
// extensions stay hidden when the caller sends none.
func (s *Server) getExtensions(w http.ResponseWriter, r *http.Request) {
	point := mux.Vars(r)["point"]

	var rctx extension.RenderContext
	if query := r.URL.Query(); len(query) > 0 {
		rctx = make(extension.RenderContext, len(query))
		for key, values := range query {
			if len(values) == 1 {
				rctx[key] = parseContextValue(values[0])
			} else {
				rctx[key] = values
			}
		}
	}

	exts := extension.FilterExtensions(s.views.ExtensionsFor(point), heldPermissions(r), rctx)
	httputil.WriteSuccess(w, exts)
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locale, domain := vars["locale"], vars["domain"]

	if !s.catalog.HasNamespace(domain) {
		httputil.WriteNotFoundError(w, "unknown translation domain: "+domain)
		return
	}

	if s.metrics != nil {
		s.metrics.TranslationLookupsTotal.WithLabelValues(domain).Inc()
	}
	httputil.WriteSuccess(w, s.catalog.Namespace(locale, domain))
}

// parseContextValue maps the query-string forms of booleans onto real
// booleans, since most Condition predicates test flags.
func parseContextValue(value string) interface{} {
	switch value {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}
