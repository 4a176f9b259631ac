package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleAnnounceRequiresMessage(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/announce", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	HandleAnnounce(deps)(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatal("expected an error response for an empty message")
	}
}

func TestHandleAnnounceAcceptsMessage(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/announce", strings.NewReader(`{"message":"server restarting soon"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	HandleAnnounce(deps)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
}
