package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReportRoutes_ForwardToReportService(t *testing.T) {
	cases := []struct {
		path     string
		wantPath string
	}{
		{"/v1/reports/solve", "/v1/reports/solve"},
		{"/v1/reports/analytics", "/v1/reports/analytics"},
		{"/v1/reports/summary", "/v1/reports/summary"},
		{"/v1/reports/list", "/v1/reports/list"},
		{"/v1/reports/formats", "/v1/reports/formats"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var gotPath string
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"ok":true}`))
			}))
			defer backend.Close()

			h := newTestHandler(t, backend)
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if gotPath != tc.wantPath {
				t.Errorf("backend saw path %q, want %q", gotPath, tc.wantPath)
			}
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDownloadReport_CollapsesToGetReport(t *testing.T) {
	var gotPath string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"reportId":"r-1","content":"..."}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports/download", strings.NewReader(`{"reportId":"r-1"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotPath != "/v1/reports/get" {
		t.Errorf("backend saw path %q, want /v1/reports/get (download collapses onto get)", gotPath)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
}
