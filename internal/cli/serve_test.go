package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/brickforge/brickstep/internal/config"
	"github.com/brickforge/brickstep/pkg/cache"
	"github.com/brickforge/brickstep/pkg/pipeline"
	"github.com/brickforge/brickstep/pkg/store"
)

const serveSample = `0 FILE root.ldr
1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
1 16 0 -24 0 1 0 0 0 1 0 0 0 1 wing.ldr
0 STEP
0 NOFILE
0 FILE wing.ldr
1 14 10 0 0 1 0 0 0 1 0 0 0 1 3010.dat
0 STEP
0 NOFILE
`

func newTestServer(t *testing.T) (*server, http.Handler) {
	t.Helper()
	logger := log.New(io.Discard)
	srv := &server{
		runner: pipeline.NewRunner(cache.NewNullCache(), nil, logger),
		store:  store.NewMemoryStore(),
		cfg:    config.Default(),
		logger: logger,
	}
	return srv, srv.routes()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestServeUnwrap(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/unwrap", unwrapRequest{Source: serveSample})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp unwrapResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary == nil {
		t.Fatal("summary missing")
	}
	if len(resp.Summary.Steps) != 3 {
		t.Errorf("steps = %d, want 3", len(resp.Summary.Steps))
	}
	if resp.Summary.Pieces != 2 {
		t.Errorf("pieces = %d, want 2", resp.Summary.Pieces)
	}
}

func TestServeUnwrapBadInput(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty source", unwrapRequest{}, http.StatusBadRequest},
		{"unknown root", unwrapRequest{
			Source:  serveSample,
			Options: pipeline.Options{RootName: "nosuch.ldr"},
		}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/unwrap", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestServeRunLifecycle(t *testing.T) {
	_, h := newTestServer(t)

	rec := postJSON(t, h, "/runs", unwrapRequest{Source: serveSample})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created store.Run
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("run id missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/runs/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/runs?source_hash="+created.SourceHash, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by hash status = %d, want 200", rec.Code)
	}
	var byHash []*store.Run
	if err := json.NewDecoder(rec.Body).Decode(&byHash); err != nil {
		t.Fatal(err)
	}
	if len(byHash) != 1 || byHash[0].ID != created.ID {
		t.Errorf("list by hash returned %d runs", len(byHash))
	}

	req = httptest.NewRequest(http.MethodDelete, "/runs/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/runs/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestServeListRunsLimit(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/runs?limit=bogus", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
