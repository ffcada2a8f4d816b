package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/services"
	"taskboard/internal/store"
)

// newTestRouter wires the real services over file stores in a temp dir.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	taskStore, err := store.NewFileTaskStore(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("Failed to open task store: %v", err)
	}
	userStore, err := store.NewFileUserStore(filepath.Join(dir, "users.json"))
	if err != nil {
		t.Fatalf("Failed to open user store: %v", err)
	}

	return handlers.NewRouter(handlers.RouterDeps{
		TaskService: services.NewTaskService(taskStore),
		AuthService: services.NewAuthService(userStore, config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BCryptCost: 4,
		}),
	})
}

func doJSON(router *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFullTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)

	create := map[string]interface{}{
		"title":     "Integration task",
		"dueDate":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"status":    "To Do",
		"priority":  "Medium",
		"taskOwner": "alice",
		"tags":      []string{"it"},
	}
	w := doJSON(router, "POST", "/api/tasks", create, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d %s", w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	id := created.Data.ID
	if id == "" {
		t.Fatal("Expected a server-assigned id")
	}

	w = doJSON(router, "GET", "/api/tasks/"+id, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Get failed: %d", w.Code)
	}

	w = doJSON(router, "PUT", "/api/tasks/"+id, map[string]interface{}{"status": "Completed"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Update failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/tasks?status=Completed", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("List failed: %d", w.Code)
	}
	var list struct {
		Pagination struct {
			TotalItems int `json:"totalItems"`
		} `json:"pagination"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if list.Pagination.TotalItems != 1 {
		t.Errorf("Expected the completed task in the listing, got %d items", list.Pagination.TotalItems)
	}

	w = doJSON(router, "DELETE", "/api/tasks/"+id, nil, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("Delete failed: %d", w.Code)
	}

	w = doJSON(router, "GET", "/api/tasks/"+id, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "POST", "/api/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password1",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "POST", "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password1",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Login failed: %d %s", w.Code, w.Body.String())
	}

	var login struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if login.Data.Token == "" {
		t.Fatal("Expected a token")
	}
	if bytes.Contains(w.Body.Bytes(), []byte("passwordHash")) {
		t.Error("Password hash leaked into the auth response")
	}

	w = doJSON(router, "GET", "/api/auth/me", nil, login.Data.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("Me failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/auth/me", nil, "bogus-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a bogus token, got %d", w.Code)
	}

	w = doJSON(router, "GET", "/api/auth/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/api/nope", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Success || resp.Error.Code != "ROUTE_NOT_FOUND" {
		t.Errorf("Unexpected envelope: %s", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
