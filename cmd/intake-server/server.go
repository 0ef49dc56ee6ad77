package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tramita/go-intake/pkg/engine"
	"github.com/tramita/go-intake/pkg/schema"
	"github.com/tramita/go-intake/pkg/submit"
	"github.com/tramita/go-intake/pkg/templates"
)

// Server serves the intake templates over HTTP. Templates and engines are
// built once at startup; every request works off the snapshot in its body.
type Server struct {
	templates map[templates.DocumentType]templates.Template
	engines   map[templates.DocumentType]*engine.Engine
	sink      submit.Sink
	router    *chi.Mux
}

// NewServer loads every stock template and wires the routes. A nil sink
// disables the submit endpoint with 503.
func NewServer(sink submit.Sink) (*Server, error) {
	s := &Server{
		templates: make(map[templates.DocumentType]templates.Template),
		engines:   make(map[templates.DocumentType]*engine.Engine),
		sink:      sink,
	}

	for _, docType := range templates.All() {
		tpl, err := templates.Load(docType)
		if err != nil {
			return nil, fmt.Errorf("load template %s: %w", docType, err)
		}
		eng, err := engine.New(tpl.Schema)
		if err != nil {
			return nil, fmt.Errorf("engine for %s: %w", docType, err)
		}
		s.templates[docType] = tpl
		s.engines[docType] = eng
	}

	s.setupRoutes()
	return s, nil
}

// Router returns the configured chi router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/templates", s.handleListTemplates)
	r.Route("/api/v1/templates/{type}", func(r chi.Router) {
		r.Post("/descriptor", s.handleDescriptor)
		r.Post("/validate", s.handleValidate)
		r.Post("/submit", s.handleSubmit)
	})

	s.router = r
}

type snapshotRequest struct {
	Values schema.Snapshot `json:"values"`
}

type submitRequest struct {
	Values            schema.Snapshot `json:"values"`
	OrderNumber       string          `json:"orderNumber,omitempty"`
	DeliveryAddress   string          `json:"deliveryAddress,omitempty"`
	ReferenceDocument string          `json:"referenceDocument,omitempty"`
}

type fieldState struct {
	schema.Field
	Visible  bool `json:"visible"`
	Required bool `json:"required"`
}

type descriptorResponse struct {
	Type   templates.DocumentType `json:"type"`
	Title  string                 `json:"title"`
	Fields []fieldState           `json:"fields"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		Type  templates.DocumentType `json:"type"`
		Title string                 `json:"title"`
	}
	out := make([]entry, 0, len(s.templates))
	for _, docType := range templates.All() {
		tpl := s.templates[docType]
		out = append(out, entry{Type: tpl.Type, Title: tpl.Title})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDescriptor returns the template's fields annotated with the
// visibility and requiredness derived from the posted snapshot, so a client
// can decide what to render after each change.
func (s *Server) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	tpl, eng, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req snapshotRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp := descriptorResponse{Type: tpl.Type, Title: tpl.Title}
	for _, field := range tpl.Schema.Fields() {
		resp.Fields = append(resp.Fields, fieldState{
			Field:    field,
			Visible:  eng.ShouldShow(field.ID, req.Values),
			Required: eng.IsRequired(field.ID, req.Values),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	_, eng, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req snapshotRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, eng.Validate(req.Values))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	tpl, eng, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if s.sink == nil {
		writeError(w, http.StatusServiceUnavailable, "submission is not configured")
		return
	}

	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := eng.Validate(req.Values)
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	payload := submit.BuildPayload(tpl, req.Values, submit.Options{
		OrderNumber:       req.OrderNumber,
		DeliveryAddress:   req.DeliveryAddress,
		ReferenceDocument: req.ReferenceDocument,
	})

	receipt, err := s.sink.Deliver(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (templates.Template, *engine.Engine, bool) {
	docType := templates.DocumentType(chi.URLParam(r, "type"))
	tpl, ok := s.templates[docType]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown template %q", docType))
		return templates.Template{}, nil, false
	}
	return tpl, s.engines[docType], true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
