package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cadastra/registryd/internal/agentcard"
	"github.com/cadastra/registryd/internal/config"
	"github.com/cadastra/registryd/internal/domain/fields"
	"github.com/cadastra/registryd/internal/domain/record"
	healthuc "github.com/cadastra/registryd/internal/usecase/health"
	searchuc "github.com/cadastra/registryd/internal/usecase/search"
)

type staticStore struct {
	records []record.Record
	err     error
}

func (s *staticStore) All() []record.Record          { return s.records }
func (s *staticStore) Check(_ context.Context) error { return s.err }

func testServer(t *testing.T, storeErr error) http.Handler {
	t.Helper()

	store := &staticStore{
		records: []record.Record{
			record.New(map[string]string{
				"name": "João", "surname": "Silva", "cpf": "123.456.789-00",
				"city": "São Paulo", "state": "SP",
			}),
		},
		err: storeErr,
	}
	policy := fields.NewPolicy(
		[]string{"name", "surname", "cpf", "city", "state"},
		[]string{"name", "surname", "city", "state"},
	)
	agent := config.AgentConfig{Name: "test_agent", Description: "test", Version: "0.1.0"}

	srv := NewServer(
		searchuc.New(store, policy),
		healthuc.New(store),
		agentcard.New(agent, policy),
		agent,
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Mount(r, "/metadata")
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, payload
}

func TestSearch_Success(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodPost, "/search", `{"name": "joão"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if payload["status"] != "success" {
		t.Errorf("status field = %v", payload["status"])
	}
	if payload["count"] != float64(1) {
		t.Errorf("count = %v, want 1", payload["count"])
	}
	results := payload["results"].([]any)
	first := results[0].(map[string]any)
	if _, ok := first["cpf"]; ok {
		t.Error("cpf must not be exposed in results")
	}
	if first["city"] != "São Paulo" {
		t.Errorf("city = %v, accented text must round-trip", first["city"])
	}
}

func TestSearch_ResultFieldOrderFollowsExposedConfig(t *testing.T) {
	h := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"name": "joão"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	body := rec.Body.String()
	want := `{"name":"João","surname":"Silva","city":"São Paulo","state":"SP"}`
	if !strings.Contains(body, want) {
		t.Errorf("body does not carry exposed-order projection:\n%s", body)
	}
}

func TestSearch_EmptyQueryReturnsZeroCountSuccess(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodPost, "/search", `{}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: no matches is not an error", rec.Code)
	}
	if payload["count"] != float64(0) {
		t.Errorf("count = %v, want 0", payload["count"])
	}
	if results, ok := payload["results"].([]any); !ok || len(results) != 0 {
		t.Errorf("results = %v, want empty array", payload["results"])
	}
}

func TestSearch_NonStringValueYieldsErrorEnvelope(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodPost, "/search", `{"name": 42}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if payload["status"] != "error" {
		t.Errorf("status field = %v, want error", payload["status"])
	}
	if payload["message"] == "" {
		t.Error("error envelope should carry a message")
	}
}

func TestSearch_MalformedBodyYieldsErrorEnvelope(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodPost, "/search", `not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if payload["status"] != "error" {
		t.Errorf("status field = %v, want error", payload["status"])
	}
}

func TestMetadata(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodGet, "/metadata", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if payload["name"] != "test_agent" {
		t.Errorf("name = %v", payload["name"])
	}
	skills := payload["skills"].([]any)
	if len(skills) != 1 {
		t.Fatalf("skills = %v", skills)
	}
}

func TestHealth(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %v", payload["status"])
	}
}

func TestHealth_Degraded(t *testing.T) {
	h := testServer(t, errors.New("store broken"))

	rec, payload := doJSON(t, h, http.MethodGet, "/health", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if payload["status"] != "degraded" {
		t.Errorf("status = %v", payload["status"])
	}
}

func TestRoot_ServiceSummary(t *testing.T) {
	h := testServer(t, nil)

	rec, payload := doJSON(t, h, http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if payload["name"] != "test_agent" {
		t.Errorf("name = %v", payload["name"])
	}
	if _, ok := payload["searchable_fields"]; !ok {
		t.Error("root view should list searchable fields")
	}
	if _, ok := payload["exposed_fields"]; !ok {
		t.Error("root view should list exposed fields")
	}
}
