package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hzchat/internal/app/adminhub"
	"hzchat/internal/app/chat"
	"hzchat/internal/configs"
	"hzchat/internal/pkg/protolog"
)

func newTestDeps(t *testing.T) *AppDeps {
	t.Helper()
	plog, err := protolog.Open(filepath.Join(t.TempDir(), "server.log"))
	if err != nil {
		t.Fatalf("protolog.Open: %v", err)
	}
	t.Cleanup(func() { _ = plog.Close() })

	return &AppDeps{
		Server: chat.NewServer(plog, nil),
		Hub:    adminhub.NewHub(),
		Config: &configs.AppConfig{Environment: "development"},
	}
}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleStatsReportsOccupancy(t *testing.T) {
	deps := newTestDeps(t)

	rec := httptest.NewRecorder()
	HandleStats(deps)(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a non-empty JSON body")
	}
}
