package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tramita/go-intake/pkg/autofill"
	"github.com/tramita/go-intake/pkg/submit"
	"github.com/tramita/go-intake/pkg/templates"
)

type sinkStub struct {
	payloads []submit.Payload
	err      error
}

func (s *sinkStub) Deliver(_ context.Context, payload submit.Payload) (submit.Receipt, error) {
	s.payloads = append(s.payloads, payload)
	if s.err != nil {
		return submit.Receipt{}, s.err
	}
	return submit.Receipt{StatusCode: 202}, nil
}

func newTestServer(t *testing.T, sink submit.Sink) *Server {
	t.Helper()
	server, err := NewServer(sink)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)
	rec := doJSON(t, server.Router(), http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListTemplates(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)
	rec := doJSON(t, server.Router(), http.MethodGet, "/api/v1/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out []struct {
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(templates.All()) {
		t.Fatalf("expected %d templates, got %d", len(templates.All()), len(out))
	}
}

func TestDescriptorReflectsSnapshot(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)

	body := map[string]any{"values": map[string]any{"procedureType": "audiencia-virtual"}}
	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/incidente/descriptor", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Fields []struct {
			ID       string `json:"id"`
			Visible  bool   `json:"visible"`
			Required bool   `json:"required"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	states := map[string]struct{ visible, required bool }{}
	for _, field := range resp.Fields {
		states[field.ID] = struct{ visible, required bool }{field.Visible, field.Required}
	}
	if got := states["virtualAudienceReason"]; !got.visible || !got.required {
		t.Fatalf("virtualAudienceReason should be visible and required, got %+v", got)
	}
	if got := states["additionalNotes"]; !got.visible || got.required {
		t.Fatalf("additionalNotes should be visible and optional, got %+v", got)
	}
}

func TestDescriptorUnknownTemplate(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)
	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/denuncia/descriptor", map[string]any{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)

	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/peticion/validate", map[string]any{
		"values": map[string]any{"fullName": "María"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var result struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Valid {
		t.Fatalf("half-empty form should be invalid")
	}
	if result.Errors["petition"] != "Petición es requerido." {
		t.Fatalf("errors = %v", result.Errors)
	}
}

func TestSubmitEndpoint(t *testing.T) {
	t.Parallel()

	sink := &sinkStub{}
	server := newTestServer(t, sink)

	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/incidente/submit", map[string]any{
		"values":            autofill.Values(templates.Incidente),
		"orderNumber":       "ORD-7",
		"deliveryAddress":   "Cra 7 # 1-1",
		"referenceDocument": "<b>Sentencia</b> T-123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(sink.payloads) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sink.payloads))
	}
	if sink.payloads[0].ReferenceDocument != "Sentencia T-123" {
		t.Fatalf("reference not sanitised: %q", sink.payloads[0].ReferenceDocument)
	}
}

func TestSubmitInvalidReturns422(t *testing.T) {
	t.Parallel()

	sink := &sinkStub{}
	server := newTestServer(t, sink)

	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/tutela/submit", map[string]any{
		"values": map[string]any{"fullName": "Carlos"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sink.payloads) != 0 {
		t.Fatalf("sink must not be touched on invalid submissions")
	}
}

func TestSubmitWithoutSink(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, nil)
	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/peticion/submit", map[string]any{
		"values": autofill.Values(templates.Peticion),
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSubmitSinkFailure(t *testing.T) {
	t.Parallel()

	sink := &sinkStub{err: fmt.Errorf("webhook down")}
	server := newTestServer(t, sink)

	rec := doJSON(t, server.Router(), http.MethodPost, "/api/v1/templates/peticion/submit", map[string]any{
		"values": autofill.Values(templates.Peticion),
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}
