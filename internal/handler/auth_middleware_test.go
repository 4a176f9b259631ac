package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hzchat/internal/pkg/auth/jwt"
)

func TestRequireAdminTokenDisabledWhenSecretEmpty(t *testing.T) {
	called := false
	h := requireAdminToken("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stats", nil))
	if !called {
		t.Fatal("expected handler to run when AdminSecret is empty")
	}
}

func TestRequireAdminTokenRejectsMissingHeader(t *testing.T) {
	called := false
	h := requireAdminToken("s3cr3t")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if called {
		t.Fatal("expected handler not to run without a token")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequireAdminTokenAcceptsValidBearer(t *testing.T) {
	token, err := jwt.GenerateAdminToken("s3cr3t")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	called := false
	h := requireAdminToken("s3cr3t")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected handler to run with a valid bearer token")
	}
}
