package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSimulationRoutes_ForwardToSimulationService(t *testing.T) {
	cases := []string{
		"/v1/simulation/whatif",
		"/v1/simulation/montecarlo",
		"/v1/simulation/sensitivity",
		"/v1/simulation/resilience",
		"/v1/simulation/playback",
	}

	for _, path := range cases {
		t.Run(path, func(t *testing.T) {
			var gotPath string
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"result":"ok"}`))
			}))
			defer backend.Close()

			h := newTestHandler(t, backend)
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if gotPath != path {
				t.Errorf("backend saw path %q, want %q", gotPath, path)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListSimulations_InjectsAuthenticatedUserID(t *testing.T) {
	var gotBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.Write([]byte(`{"simulations":[]}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/simulations/list", strings.NewReader(`{}`))
	req = withUserContext(req, "user-3", "member")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(gotBody, `"user-3"`) {
		t.Errorf("forwarded body = %s, want it to carry the authenticated user ID", gotBody)
	}
}
