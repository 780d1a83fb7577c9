package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
)

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    uint   `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Ana", "email": "", "password": "secret1",
	})
	wantStatus(t, resp, fiber.StatusBadRequest)

	resp = doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Ana", "email": "ana@test.dev", "password": "short",
	})
	wantStatus(t, resp, fiber.StatusBadRequest)
}

func TestRegisterLoginAndMe(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Ana", "email": "ana@test.dev", "password": "secret1",
	})
	wantStatus(t, resp, fiber.StatusCreated)

	var registered authResponse
	decodeBody(t, resp, &registered)
	if registered.Token == "" {
		t.Fatal("register returned no token")
	}
	if registered.User.Email != "ana@test.dev" {
		t.Errorf("got registered email %q, want ana@test.dev", registered.User.Email)
	}

	// password is never stored in the clear
	var stored models.User
	if err := lib.DB.First(&stored, registered.User.ID).Error; err != nil {
		t.Fatalf("failed to load stored user: %v", err)
	}
	if stored.Password == "secret1" || stored.Password == "" {
		t.Error("password was not hashed before storage")
	}

	resp = doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "ana@test.dev", "password": "secret1",
	})
	wantStatus(t, resp, fiber.StatusOK)

	var loggedIn authResponse
	decodeBody(t, resp, &loggedIn)
	if loggedIn.Token == "" {
		t.Fatal("login returned no token")
	}

	resp = doRequest(t, app, "GET", "/api/v1/auth/me", loggedIn.Token, nil)
	wantStatus(t, resp, fiber.StatusOK)

	var me struct {
		ID    uint   `json:"_id"`
		Email string `json:"email"`
	}
	decodeBody(t, resp, &me)
	if me.ID != registered.User.ID {
		t.Errorf("got user %d from /me, want %d", me.ID, registered.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	body := fiber.Map{"name": "Ana", "email": "ana@test.dev", "password": "secret1"}

	resp := doRequest(t, app, "POST", "/api/v1/auth/register", "", body)
	wantStatus(t, resp, fiber.StatusCreated)

	resp = doRequest(t, app, "POST", "/api/v1/auth/register", "", body)
	wantStatus(t, resp, fiber.StatusConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/v1/auth/register", "", fiber.Map{
		"name": "Ana", "email": "ana@test.dev", "password": "secret1",
	})
	wantStatus(t, resp, fiber.StatusCreated)

	resp = doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "ana@test.dev", "password": "wrong-password",
	})
	wantStatus(t, resp, fiber.StatusUnauthorized)

	resp = doRequest(t, app, "POST", "/api/v1/auth/login", "", fiber.Map{
		"email": "nobody@test.dev", "password": "secret1",
	})
	wantStatus(t, resp, fiber.StatusUnauthorized)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/auth/me", "", nil)
	wantStatus(t, resp, fiber.StatusUnauthorized)

	resp = doRequest(t, app, "GET", "/api/v1/auth/me", "not-a-token", nil)
	wantStatus(t, resp, fiber.StatusUnauthorized)
}
