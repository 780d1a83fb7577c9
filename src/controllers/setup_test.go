package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"github.com/hackmate-app/hackmate-backend/src/routes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global lib.DB at a fresh in-memory database.
// Each test gets its own named database so state never leaks between tests.
func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Connection{},
		&models.Notification{},
		&models.Chat{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	lib.DB = db
}

// newTestApp builds a fiber app with every SQLite-backed route registered.
// Hackathon routes are left out: the catalog needs a live MongoDB.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.ChatRoutes(app)
	routes.MessageRoutes(app)
	routes.NotificationRoutes(app)
	return app
}

// createTestUser inserts a user and returns it with a valid bearer token
func createTestUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
	}
	if err := lib.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	token, err := lib.GenerateJWT(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token for %s: %v", email, err)
	}
	return user, token
}

// connectUsers inserts an accepted edge between the two users
func connectUsers(t *testing.T, a, b models.User) {
	t.Helper()

	conn := models.Connection{
		SenderID:    a.ID,
		RecipientID: b.ID,
		Status:      models.ConnectionStatusAccepted,
	}
	if err := lib.DB.Create(&conn).Error; err != nil {
		t.Fatalf("failed to connect users: %v", err)
	}
}

// doRequest runs a JSON request against the app and returns the response
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// decodeBody decodes the response body into v
func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// wantStatus fails the test when the response status doesn't match
func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("got status %d, want %d (body: %s)", resp.StatusCode, want, body)
	}
}
