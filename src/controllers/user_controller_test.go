package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
)

func seedStudent(t *testing.T, name, email, college, state, branch string, skills []string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		College:  college,
		State:    state,
		Branch:   branch,
		Skills:   skills,
	}
	if err := lib.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed student %s: %v", email, err)
	}
	return user
}

func TestUpdateProfileMergesFields(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	user, token := createTestUser(t, "Ana", "ana@test.dev")

	resp := doRequest(t, app, "PUT", "/api/v1/users/profile", token, fiber.Map{
		"bio":     "Backend tinkerer",
		"college": "MIT",
		"skills":  []string{"Go", " SQL "},
	})
	wantStatus(t, resp, fiber.StatusOK)

	var stored models.User
	if err := lib.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Bio != "Backend tinkerer" {
		t.Errorf("got bio %q, want Backend tinkerer", stored.Bio)
	}
	if stored.College != "MIT" {
		t.Errorf("got college %q, want MIT", stored.College)
	}
	if len(stored.Skills) != 2 || stored.Skills[0] != "Go" || stored.Skills[1] != "SQL" {
		t.Errorf("got skills %v, want trimmed [Go SQL]", stored.Skills)
	}
	// untouched fields survive the merge
	if stored.Name != "Ana" {
		t.Errorf("got name %q, want Ana", stored.Name)
	}
}

func TestGetPublicProfileNeedsNoAuth(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	user, _ := createTestUser(t, "Ana", "ana@test.dev")

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/v1/users/public/%d", user.ID), "", nil)
	wantStatus(t, resp, fiber.StatusOK)

	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	decodeBody(t, resp, &body)
	if body.Name != "Ana" {
		t.Errorf("got name %q, want Ana", body.Name)
	}
	if body.Password != "" {
		t.Error("public profile leaked the password field")
	}

	resp = doRequest(t, app, "GET", "/api/v1/users/public/9999", "", nil)
	wantStatus(t, resp, fiber.StatusNotFound)
}

func TestGetRecommendedStudents(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	_, token := createTestUser(t, "Ana", "ana@test.dev")
	match := seedStudent(t, "Ben", "ben@test.dev", "MIT ", "MA", "CSE", []string{"Go", "React"})
	seedStudent(t, "Cam", "cam@test.dev", "Stanford", "CA", "CSE", []string{"Rust"})
	excludedMatch := seedStudent(t, "Dia", "dia@test.dev", "mit", "MA", "CSE", []string{"Go"})

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/v1/users/recommendations?college=MIT&excludeIds=%d", excludedMatch.ID), token, nil)
	wantStatus(t, resp, fiber.StatusOK)

	var got []struct {
		ID   uint   `json:"_id"`
		Name string `json:"name"`
	}
	decodeBody(t, resp, &got)
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got[0].ID != match.ID {
		t.Errorf("got user %d, want %d", got[0].ID, match.ID)
	}
}

func TestGetRecommendedStudentsAnyIsWildcard(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	_, token := createTestUser(t, "Ana", "ana@test.dev")
	seedStudent(t, "Ben", "ben@test.dev", "MIT", "MA", "CSE", nil)
	seedStudent(t, "Cam", "cam@test.dev", "Stanford", "CA", "ECE", nil)

	resp := doRequest(t, app, "GET", "/api/v1/users/recommendations?college=Any&state=any", token, nil)
	wantStatus(t, resp, fiber.StatusOK)

	var got []struct {
		Name string `json:"name"`
	}
	decodeBody(t, resp, &got)
	if len(got) != 2 {
		t.Errorf("got %d recommendations, want 2 (wildcard filters)", len(got))
	}
}

func TestGetRecommendedStudentsBySkill(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	_, token := createTestUser(t, "Ana", "ana@test.dev")
	goDev := seedStudent(t, "Ben", "ben@test.dev", "", "", "", []string{"Go", "Docker"})
	seedStudent(t, "Cam", "cam@test.dev", "", "", "", []string{"Figma"})

	resp := doRequest(t, app, "GET", "/api/v1/users/recommendations?skills=go", token, nil)
	wantStatus(t, resp, fiber.StatusOK)

	var got []struct {
		ID uint `json:"_id"`
	}
	decodeBody(t, resp, &got)
	if len(got) != 1 || got[0].ID != goDev.ID {
		t.Errorf("got %v, want just user %d", got, goDev.ID)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	_, token := createTestUser(t, "Ana", "ana@test.dev")
	target, _ := createTestUser(t, "Ben", "ben@test.dev")

	resp := doRequest(t, app, "GET", "/api/v1/users", token, nil)
	wantStatus(t, resp, fiber.StatusForbidden)

	admin := models.User{Name: "Root", Email: "root@test.dev", Password: "x", IsAdmin: true}
	if err := lib.DB.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	adminToken, err := lib.GenerateJWT(admin.ID)
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}

	resp = doRequest(t, app, "GET", "/api/v1/users", adminToken, nil)
	wantStatus(t, resp, fiber.StatusOK)

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/v1/users/%d", target.ID), adminToken, fiber.Map{
		"name": "Benjamin",
	})
	wantStatus(t, resp, fiber.StatusOK)

	var updated models.User
	if err := lib.DB.First(&updated, target.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if updated.Name != "Benjamin" {
		t.Errorf("got name %q, want Benjamin", updated.Name)
	}

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/v1/users/%d", target.ID), adminToken, nil)
	wantStatus(t, resp, fiber.StatusOK)

	if err := lib.DB.First(&models.User{}, target.ID).Error; err == nil {
		t.Error("deleted user still loadable")
	}
}
