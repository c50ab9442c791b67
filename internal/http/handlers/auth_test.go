package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"raiseme/internal/auth"
)

func TestRegisterAndDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := `{"email":"new@example.com","password":"s3cret","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.app.Register(rr, req)

	if rr.Code != 201 {
		t.Fatalf("first register status = %d, want 201", rr.Code)
	}
	stored, err := env.users.GetByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if stored.FirstName == nil || *stored.FirstName != "Ada" {
		t.Fatalf("first name = %v", stored.FirstName)
	}

	req = httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	rr = httptest.NewRecorder()
	env.app.Register(rr, req)

	if rr.Code != 400 {
		t.Fatalf("duplicate register status = %d, want 400", rr.Code)
	}
	again, err := env.users.GetByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("first user lost after duplicate: %v", err)
	}
	if again.ID != stored.ID || again.Password != stored.Password {
		t.Fatal("duplicate registration modified the first record")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"email":"x@example.com"}`))
	rr := httptest.NewRecorder()
	env.app.Register(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "s3cret", false)

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"user@example.com","password":"s3cret"}`))
	rr := httptest.NewRecorder()
	env.app.Login(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Message string `json:"message"`
		Tokens  struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
		User struct {
			Email         string  `json:"email"`
			LastLoginDate *string `json:"last_login_date"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tokens.Access == "" || resp.Tokens.Refresh == "" {
		t.Fatal("login did not return a token pair")
	}
	if resp.User.Email != "user@example.com" {
		t.Fatalf("profile email = %q", resp.User.Email)
	}
	if resp.User.LastLoginDate == nil {
		t.Fatal("last_login_date not stamped on login")
	}

	id, err := env.app.Auth.Validate(context.Background(), resp.Tokens.Access)
	if err != nil {
		t.Fatalf("issued access token invalid: %v", err)
	}
	if id.Type != auth.TokenTypeAccess || id.Email != "user@example.com" {
		t.Fatalf("token identity = %+v", id)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "user@example.com", "s3cret", false)

	for _, body := range []string{
		`{"email":"user@example.com","password":"wrong"}`,
		`{"email":"ghost@example.com","password":"s3cret"}`,
	} {
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.app.Login(rr, req)

		if rr.Code != 401 {
			t.Fatalf("body %s: status = %d, want 401", body, rr.Code)
		}
		if strings.Contains(rr.Body.String(), "access") {
			t.Fatalf("failed login leaked tokens: %s", rr.Body.String())
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user@example.com", "s3cret", false)

	pair, err := env.app.Auth.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rr := httptest.NewRecorder()
	env.app.Logout(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "access token revoked successfully") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	if _, err := env.app.Auth.Validate(context.Background(), pair.Access); err == nil {
		t.Fatal("token still validates after logout")
	}

	// Logging out again with the same token is still a revocation no-op.
	rr = httptest.NewRecorder()
	env.app.Logout(rr, req)
	if rr.Code != 200 {
		t.Fatalf("second logout status = %d, want 200", rr.Code)
	}
}
