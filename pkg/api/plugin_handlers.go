package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hostpanel/hostpanel/pkg/extension"
	"github.com/hostpanel/hostpanel/pkg/httputil"
)

// PluginSummary is the list representation of a registered plugin.
type PluginSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Routes      int    `json:"routes"`
	MenuItems   int    `json:"menu_items"`
	Extensions  int    `json:"extensions"`
	Widgets     int    `json:"widgets"`
}

func summarize(d *extension.Descriptor) PluginSummary {
	return PluginSummary{
		Name:        d.Name,
		Version:     d.Version,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Author:      d.Author,
		Routes:      len(d.Routes),
		MenuItems:   len(d.MenuItems),
		Extensions:  len(d.ComponentExtensions),
		Widgets:     len(d.DashboardWidgets),
	}
}

func (s *Server) listPlugins(w http.ResponseWriter, r *http.Request) {
	plugins := s.views.AllPlugins()
	summaries := make([]PluginSummary, 0, len(plugins))
	for _, d := range plugins {
		summaries = append(summaries, summarize(d))
	}
	httputil.WriteSuccess(w, summaries)
}

func (s *Server) getPlugin(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	d := s.views.Plugin(name)
	if d == nil {
		httputil.WriteNotFoundError(w, "plugin not found: "+name)
		return
	}
	httputil.WriteSuccess(w, d)
}

// registerPlugin accepts a callback-free descriptor as JSON. Plugins needing
// lifecycle callbacks register in-process instead.
func (s *Server) registerPlugin(w http.ResponseWriter, r *http.Request) {
	var d extension.Descriptor
	if !httputil.ParseJSONOrError(w, r, &d) {
		return
	}

	if err := s.registry.Register(r.Context(), &d); err != nil {
		if extension.IsValidationError(err) {
			if s.registry.IsRegistered(d.Name) {
				httputil.WriteConflict(w, err.Error())
				return
			}
			httputil.WriteValidationError(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteCreated(w, summarize(&d))
}

func (s *Server) unregisterPlugin(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	// Unknown names resolve silently; deletion is idempotent.
	if err := s.registry.Unregister(r.Context(), name); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (s *Server) getLoadState(w http.ResponseWriter, r *http.Request) {
	state := s.registry.LoadState()

	type failure struct {
		Name  string `json:"name"`
		Error string `json:"error"`
	}
	payload := struct {
		Loading bool      `json:"loading"`
		Loaded  []string  `json:"loaded"`
		Failed  []failure `json:"failed"`
	}{
		Loading: state.Loading,
		Loaded:  state.Loaded,
		Failed:  make([]failure, 0, len(state.Failed)),
	}
	for _, f := range state.Failed {
		payload.Failed = append(payload.Failed, failure{Name: f.Name, Error: f.Error()})
	}
	httputil.WriteSuccess(w, payload)
}
