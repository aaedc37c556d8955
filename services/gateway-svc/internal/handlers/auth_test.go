package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleLogin_Success(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" {
			t.Errorf("backend got path %q, want /v1/auth/login", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"accessToken":"tok-1"}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "tok-1") {
		t.Errorf("body = %s, want the access token", rec.Body.String())
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"errorMessage":"invalid credentials"}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401, body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_LogsInAfterSuccessfulRegistration(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/register":
			w.Write([]byte(`{"success":true}`))
		case "/v1/auth/login":
			w.Write([]byte(`{"success":true,"accessToken":"tok-after-register"}`))
		default:
			t.Errorf("unexpected backend path %q", r.URL.Path)
		}
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(`{"username":"bob","password":"secret","email":"bob@example.com"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "tok-after-register") {
		t.Errorf("body = %s, want the access token from the follow-up login", rec.Body.String())
	}
}

func TestHandleLogout_EmptyTokenSkipsBackendCall(t *testing.T) {
	h := newTestHandler(t, httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called when no token is present")
	})))

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success:true for a no-op logout", rec.Body.String())
	}
}

func TestHandleLogout_ForwardsBearerToken(t *testing.T) {
	var gotToken string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		w.Write([]byte(`{"success":true}`))
	}))
	defer backend.Close()

	h := newTestHandler(t, backend)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if gotToken != "header-token" {
		t.Errorf("backend received token %q, want header-token", gotToken)
	}
}

func TestHandleProfile_RequiresAuthentication(t *testing.T) {
	h := newTestHandler(t, httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401, body=%s", rec.Code, rec.Body.String())
	}
}

func TestHandleProfile_ReturnsAuthenticatedUserInfo(t *testing.T) {
	h := newTestHandler(t, httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/profile", nil)
	req = withUserContext(req, "user-5", "member")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "user-5") {
		t.Errorf("body = %s, want the authenticated user ID", rec.Body.String())
	}
}
