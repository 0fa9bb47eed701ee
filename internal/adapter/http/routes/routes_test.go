package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"copiadora_xpto/internal/adapter/persistence/memory"
	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/infrastructure/auth"
	"copiadora_xpto/internal/infrastructure/config"
	"copiadora_xpto/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	admin  string
	user   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	store.PutClient(entities.Client{ID: "cli-1", Name: "Escritorio Central", Active: true})
	store.PutCopyMachine(entities.ClientCopyMachine{ID: "mac-1", ClientID: "cli-1", SerialNumber: "SN-1", AcquisitionType: entities.AcquisitionTypeRent})

	verifier, err := auth.NewJWTVerifier("test-secret")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	admin, _ := verifier.Issue(entities.Actor{UserID: 1, Role: entities.RoleAdmin}, time.Hour)
	user, _ := verifier.Issue(entities.Actor{UserID: 7, Role: entities.RoleUser}, time.Hour)

	repos := repositories{
		services:     store.Services(),
		steps:        store.Steps(),
		images:       store.Images(),
		categories:   store.Categories(),
		clients:      store.Clients(),
		copyMachines: store.CopyMachines(),
		snapshots:    store.DashboardStats(),
	}
	cfg := config.Config{StatsMode: analytics.ModeLatestStep, Location: time.UTC}
	app := newApp(repos, storage.NewMemoryImageStore(), verifier, cfg)

	return &testServer{t: t, router: NewRouter(app), admin: admin, user: user}
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestRouter_PublicAndAuth(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodGet, "/v1/ping", "", "")
	if code != http.StatusOK || body["message"] != "pong" {
		t.Fatalf("unexpected ping response %d %v", code, body)
	}

	if code, _ := s.do(http.MethodGet, "/v1/services", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/v1/services", "garbage", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/v1/dashboard/stats", s.user, ""); code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin dashboard, got %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/v1/categories", s.user, `{"name":"x"}`); code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin category create, got %d", code)
	}
	if code, _ := s.do(http.MethodDelete, "/v1/users/7/assignments", s.user, ""); code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin unassign, got %d", code)
	}
}

func TestRouter_ServiceLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, category := s.do(http.MethodPost, "/v1/categories", s.admin, `{"name":"Maintenance","steps":[{"name":"Diagnose"}]}`)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", code, category)
	}
	categoryID := category["id"].(string)

	payload := fmt.Sprintf(`{"client_id":"cli-1","category_id":%q,"client_copy_machine_id":"mac-1",
		"steps":[{"name":"Diagnose","responsable_id":7},{"name":"Repair","responsable_id":8}]}`, categoryID)
	code, svc := s.do(http.MethodPost, "/v1/services", s.admin, payload)
	if code != http.StatusCreated || svc["status"] != "PENDING" {
		t.Fatalf("unexpected create response %d %v", code, svc)
	}
	serviceID := svc["id"].(string)
	steps := svc["steps"].([]any)
	first := steps[0].(map[string]any)["id"].(string)
	second := steps[1].(map[string]any)["id"].(string)

	if code, _ := s.do(http.MethodPatch, "/v1/steps/"+second+"/start", s.user, ""); code != http.StatusForbidden {
		t.Fatalf("expected 403 starting someone else's step, got %d", code)
	}
	if code, _ := s.do(http.MethodPatch, "/v1/steps/"+first+"/conclude", s.user, ""); code != http.StatusConflict {
		t.Fatalf("expected 409 concluding a pending step, got %d", code)
	}
	if code, step := s.do(http.MethodPatch, "/v1/steps/"+first+"/start", s.user, ""); code != http.StatusOK || step["status"] != "IN_PROGRESS" {
		t.Fatalf("unexpected start response %d %v", code, step)
	}

	code, svc = s.do(http.MethodGet, "/v1/services/"+serviceID, s.user, "")
	if code != http.StatusOK || svc["status"] != "IN_PROGRESS" {
		t.Fatalf("expected service promoted to IN_PROGRESS, got %d %v", code, svc)
	}

	code, page := s.do(http.MethodGet, "/v1/services?acquisition_type=RENT&limit=5", s.user, "")
	if code != http.StatusOK || page["total"] != float64(1) || page["limit"] != float64(5) {
		t.Fatalf("unexpected listing %d %v", code, page)
	}

	code, stats := s.do(http.MethodGet, "/v1/dashboard/stats", s.admin, "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	services := stats["services"].(map[string]any)
	if services["total"] != float64(1) || services["inProgress"] != float64(1) {
		t.Fatalf("unexpected dashboard services %v", services)
	}

	if code, _ := s.do(http.MethodDelete, "/v1/categories/"+categoryID, s.admin, ""); code != http.StatusConflict {
		t.Fatalf("expected 409 deleting a category in use, got %d", code)
	}

	code, unassigned := s.do(http.MethodDelete, "/v1/users/8/assignments", s.admin, "")
	if code != http.StatusOK || unassigned["steps"] != float64(1) {
		t.Fatalf("unexpected unassign response %d %v", code, unassigned)
	}

	if code, _ := s.do(http.MethodDelete, "/v1/services/"+serviceID, s.admin, ""); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/v1/steps/"+first, s.user, ""); code != http.StatusNotFound {
		t.Fatalf("expected cascade delete of steps, got %d", code)
	}
}
