package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mergington/school-activities/internal/config"
	"github.com/mergington/school-activities/internal/logging"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppName:   "test",
		AppEnv:    "development",
		JWTSecret: "test-secret-at-least-32-characters!!",
		TokenTTL:  time.Hour,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	var decoded map[string]any
	_ = json.Unmarshal(payload, &decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	creds := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", creds, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected %d got %d", http.StatusCreated, resp.StatusCode)
	}
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", creds, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected %d got %d", http.StatusOK, resp.StatusCode)
	}
	tokenStr, _ := body["access_token"].(string)
	if tokenStr == "" {
		t.Fatalf("login response missing access_token: %v", body)
	}
	if tokenType, _ := body["token_type"].(string); tokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %v", body["token_type"])
	}
	return tokenStr
}

func TestListActivitiesIsPublicAndSeeded(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/activities", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()

	var listed []map[string]any
	if err := json.Unmarshal(payload, &listed); err != nil {
		t.Fatalf("decode activities: %v", err)
	}
	if len(listed) != 9 {
		t.Fatalf("expected 9 seeded activities, got %d", len(listed))
	}
	if name, _ := listed[0]["name"].(string); name != "Art Club" {
		t.Fatalf("expected activities sorted by name starting with Art Club, got %s", name)
	}
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	app := setupTestApp(t)
	creds := `{"email":"dup@mergington.edu","password":"StrongPass123!"}`

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", creds, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected %d got %d", http.StatusCreated, resp.StatusCode)
	}
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", creds, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected %d got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := setupTestApp(t)
	registerAndLogin(t, app, "carol@mergington.edu", "StrongPass123!")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"email":"carol@mergington.edu","password":"WrongPass123!"}`, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestEnrollmentLifecycle(t *testing.T) {
	app := setupTestApp(t)
	bearer := registerAndLogin(t, app, "alice@mergington.edu", "StrongPass123!")
	body := `{"email":"alice@mergington.edu"}`

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Chess%20Club/signup", body, bearer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup: expected %d got %d", http.StatusOK, resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Chess%20Club/signup", body, bearer)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup: expected %d got %d", http.StatusConflict, resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/activities/Chess%20Club/unregister", body, bearer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unregister: expected %d got %d", http.StatusOK, resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/activities/Chess%20Club/unregister", body, bearer)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("repeat unregister: expected %d got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestSignupForSomeoneElseIsForbidden(t *testing.T) {
	app := setupTestApp(t)
	bearer := registerAndLogin(t, app, "carol@mergington.edu", "StrongPass123!")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Chess%20Club/signup",
		`{"email":"dave@mergington.edu"}`, bearer)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected %d got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestUnknownActivityIs404(t *testing.T) {
	app := setupTestApp(t)
	bearer := registerAndLogin(t, app, "erin@mergington.edu", "StrongPass123!")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Knitting%20Circle/signup",
		`{"email":"erin@mergington.edu"}`, bearer)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected %d got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestEnrollmentRequiresToken(t *testing.T) {
	app := setupTestApp(t)
	body := `{"email":"alice@mergington.edu"}`

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Chess%20Club/signup", body, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token: expected %d got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/activities/Chess%20Club/signup", body, "garbage-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: expected %d got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}
