package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AndrewBazen/django-schema-viewer/internal/layout"
	"github.com/AndrewBazen/django-schema-viewer/internal/render"
	"github.com/AndrewBazen/django-schema-viewer/internal/routing"
	"github.com/AndrewBazen/django-schema-viewer/internal/schema"
)

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	sch, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	excludeSystem := true
	if v := r.URL.Query().Get("exclude_system"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		excludeSystem = parsed
	}
	_ = excludeSystem // system-app filtering happens at the source when the schema is loaded; this flag is accepted for API parity

	writeJSON(w, http.StatusOK, sch)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	appLabel := r.PathValue("app")
	modelName := r.PathValue("model")

	sch, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	model, ok := sch.Model(appLabel, modelName)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// layoutResponse is the JSON-serializable view of a layout.Result plus its
// routed edges — positions and bounds keyed by "app.Model", matching the
// node keys the engine uses internally.
type layoutResponse struct {
	Positions map[string]layout.Position `json:"positions"`
	Bounds    map[string]layout.Bounds   `json:"bounds"`
	Routes    []routeView                `json:"routes"`
}

type routeView struct {
	Source string                  `json:"source"`
	Target string                  `json:"target"`
	Type   schema.RelationshipType `json:"type"`
	Points []routing.Point         `json:"points"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	result, routes, err := s.computeLayout(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := layoutResponse{
		Positions: result.Positions,
		Bounds:    result.Bounds,
		Routes:    make([]routeView, 0, len(routes)),
	}
	for _, rt := range routes {
		resp.Routes = append(resp.Routes, routeView{
			Source: rt.Source,
			Target: rt.Target,
			Type:   rt.Rel.Type,
			Points: rt.Points,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	result, routes, err := s.computeLayout(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	doc := render.RenderSVG(result, routes)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (s *Server) computeLayout(r *http.Request) (*layout.Result, []*routing.Route, error) {
	sch, err := s.load(r.Context())
	if err != nil {
		return nil, nil, err
	}
	result := layout.Compute(sch)
	routes := routing.RouteAll(result.Graph, result.Bounds)
	return result, routes, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
