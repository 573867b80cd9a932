package integration

import (
	"net/http"
	"testing"
)

func TestRegisterLoginProfileFlow(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "jane@example.com", "password123")
	if token == "" || userID == "" {
		t.Fatal("expected token and user id from registration")
	}

	// Duplicate registration is rejected.
	rec := app.request("POST", "/api/v1/auth/register",
		`{"email":"jane@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}

	// Login with the same credentials.
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"jane@example.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	loginToken := parseJSON(t, rec)["token"].(string)

	// Token grants access to the profile.
	rec = app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["email"] != "jane@example.com" {
		t.Errorf("expected profile email jane@example.com, got %v", user["email"])
	}

	// No token, no access.
	rec = app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Wrong password is rejected.
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"jane@example.com","password":"wrong-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}
}
