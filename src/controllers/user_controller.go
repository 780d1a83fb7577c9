package controllers

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated user's full profile
func GetProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.JSON(user)
}

// UpdateProfile merges the provided fields into the authenticated
// user's profile; empty fields keep their old values
func UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		Name         string              `json:"name"`
		Email        string              `json:"email"`
		Status       string              `json:"status"`
		Bio          string              `json:"bio"`
		Avatar       string              `json:"avatar"`
		Achievements string              `json:"achievements"`
		Skills       []string            `json:"skills"`
		College      string              `json:"college"`
		State        string              `json:"state"`
		Branch       string              `json:"branch"`
		SocialLinks  *models.SocialLinks `json:"socialLinks"`
		Password     string              `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var stored models.User
	if err := lib.DB.First(&stored, user.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	if body.Name != "" {
		stored.Name = body.Name
	}
	if body.Email != "" {
		stored.Email = body.Email
	}
	if body.Status != "" {
		stored.Status = body.Status
	}
	if body.Bio != "" {
		stored.Bio = body.Bio
	}
	if body.Avatar != "" {
		stored.Avatar = body.Avatar
	}
	if body.Achievements != "" {
		stored.Achievements = body.Achievements
	}
	if body.Skills != nil {
		skills := make([]string, 0, len(body.Skills))
		for _, s := range body.Skills {
			skills = append(skills, strings.TrimSpace(s))
		}
		stored.Skills = skills
	}
	if body.College != "" {
		stored.College = strings.TrimSpace(body.College)
	}
	if body.State != "" {
		stored.State = strings.TrimSpace(body.State)
	}
	if body.Branch != "" {
		stored.Branch = strings.TrimSpace(body.Branch)
	}
	if body.SocialLinks != nil {
		if body.SocialLinks.Linkedin != "" {
			stored.SocialLinks.Linkedin = body.SocialLinks.Linkedin
		}
		if body.SocialLinks.Github != "" {
			stored.SocialLinks.Github = body.SocialLinks.Github
		}
		if body.SocialLinks.Portfolio != "" {
			stored.SocialLinks.Portfolio = body.SocialLinks.Portfolio
		}
	}
	if strings.TrimSpace(body.Password) != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 11)
		if err != nil {
			slog.Error("Failed to hash password", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
		stored.Password = string(hashed)
	}

	if err := lib.DB.Save(&stored).Error; err != nil {
		slog.Error("Failed to update profile", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update profile",
		})
	}

	stored.Password = ""
	return c.JSON(stored)
}

// GetPublicProfile returns a user's public profile by id; no auth required
func GetPublicProfile(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user, err := lib.FindUserByID(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	return c.JSON(user)
}

// GetRecommendedStudents filters users by college/state/branch/skills,
// always excluding the caller and any ids passed in excludeIds
func GetRecommendedStudents(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	excluded := []uint{user.ID}
	if raw := c.Query("excludeIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32); err == nil {
				excluded = append(excluded, uint(id))
			}
		}
	}

	query := lib.DB.Model(&models.User{}).Where("id NOT IN ?", excluded)

	// "Any" is the frontend's wildcard option
	isSet := func(v string) bool {
		v = strings.TrimSpace(v)
		return v != "" && !strings.EqualFold(v, "any")
	}

	if college := c.Query("college"); isSet(college) {
		query = query.Where("LOWER(TRIM(college)) = ?", strings.ToLower(strings.TrimSpace(college)))
	}
	if state := c.Query("state"); isSet(state) {
		query = query.Where("LOWER(TRIM(state)) = ?", strings.ToLower(strings.TrimSpace(state)))
	}
	if branch := c.Query("branch"); isSet(branch) {
		query = query.Where("LOWER(TRIM(branch)) = ?", strings.ToLower(strings.TrimSpace(branch)))
	}
	if skills := c.Query("skills"); skills != "" {
		// Skills are stored as a JSON array; match any requested skill
		// as a case-insensitive substring of the serialized list.
		var clauses []string
		var args []interface{}
		for _, s := range strings.Split(skills, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			clauses = append(clauses, "LOWER(skills) LIKE ?")
			args = append(args, "%"+strings.ToLower(s)+"%")
		}
		if len(clauses) > 0 {
			query = query.Where(strings.Join(clauses, " OR "), args...)
		}
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		slog.Error("Failed to find recommended students", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	for i := range users {
		users[i].Password = ""
		users[i].IsAdmin = false
	}

	return c.JSON(users)
}

// GetUsers returns all users (admin)
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := lib.DB.Find(&users).Error; err != nil {
		slog.Error("Failed to list users", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// GetUserByID returns one user (admin)
func GetUserByID(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user, err := lib.FindUserByID(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	return c.JSON(user)
}

// UpdateUser updates name/email/admin flag of a user (admin)
func UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin *bool  `json:"isAdmin"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var user models.User
	if err := lib.DB.First(&user, uint(userID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		slog.Error("Failed to load user", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.IsAdmin != nil {
		user.IsAdmin = *body.IsAdmin
	}

	if err := lib.DB.Save(&user).Error; err != nil {
		slog.Error("Failed to update user", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// DeleteUser removes a user (admin). Edges, chats and messages that
// reference the user are left in place; lifecycles are independent.
func DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	var user models.User
	if err := lib.DB.First(&user, uint(userID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		slog.Error("Failed to load user", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if err := lib.DB.Delete(&user).Error; err != nil {
		slog.Error("Failed to delete user", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User removed",
	})
}
