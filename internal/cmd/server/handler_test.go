package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cyface-de/datacapturing/internal/core"
	"github.com/cyface-de/datacapturing/internal/handler"
	"github.com/cyface-de/datacapturing/pkg/version"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	uc, err := core.NewIdentityUseCase(core.Version(version.String()))
	if err != nil {
		t.Fatalf("NewIdentityUseCase: %v", err)
	}
	svc, err := handler.NewIdentityService(uc)
	if err != nil {
		t.Fatalf("NewIdentityService: %v", err)
	}
	return NewHandler(svc)
}

func mountedMux(t *testing.T) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	if err := newTestHandler(t).Mount(mux); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mux
}

func TestMount_ServesIdentityRoutes(t *testing.T) {
	mux := mountedMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/version", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/version status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got core.Identity
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Version != version.String() {
		t.Errorf("version = %q, want %q", got.Version, version.String())
	}
}

func TestMount_MetricsExposeBuildInfo(t *testing.T) {
	mux := mountedMux(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "datacapturing_build_info") {
		t.Errorf("metrics output is missing datacapturing_build_info:\n%s", body)
	}
	if !strings.Contains(body, `version="`+version.String()+`"`) {
		t.Errorf("build_info is missing the version label %q", version.String())
	}
}
