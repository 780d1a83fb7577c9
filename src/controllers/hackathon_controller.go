package controllers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
	"github.com/hackmate-app/hackmate-backend/src/realtime"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mergeFilters(filters ...bson.M) bson.M {
	merged := bson.M{}
	for _, f := range filters {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

func findHackathons(ctx context.Context, filter bson.M) ([]models.Hackathon, error) {
	opts := options.Find().SetSort(bson.M{"startDate": 1})

	cursor, err := lib.HackathonCollection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var hackathons []models.Hackathon
	if err := cursor.All(ctx, &hackathons); err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range hackathons {
		hackathons[i].Status = hackathons[i].StatusAt(now)
	}
	return hackathons, nil
}

// GetAllHackathons lists the catalog with optional search text and
// status filter, sorted by start date ascending
func GetAllHackathons(c *fiber.Ctx) error {
	filter := mergeFilters(
		models.HackathonSearchFilter(c.Query("search")),
		models.HackathonStatusFilter(c.Query("status"), time.Now()),
	)

	hackathons, err := findHackathons(c.Context(), filter)
	if err != nil {
		slog.Error("Failed to find hackathons", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if hackathons == nil {
		hackathons = []models.Hackathon{}
	}
	return c.Status(fiber.StatusOK).JSON(hackathons)
}

// GetHackathonByID returns a single hackathon
func GetHackathonByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid hackathon ID format",
		})
	}

	var hackathon models.Hackathon
	err = lib.HackathonCollection().FindOne(c.Context(), bson.M{"_id": id}).Decode(&hackathon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Hackathon not found",
			})
		}
		slog.Error("Failed to find hackathon", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	hackathon.Status = hackathon.StatusAt(time.Now())
	return c.Status(fiber.StatusOK).JSON(hackathon)
}

// broadcastCatalog pushes the refreshed catalog to every connected
// session after a mutation. Best-effort.
func broadcastCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hackathons, err := findHackathons(ctx, bson.M{})
	if err != nil {
		slog.Warn("Failed to load catalog for broadcast", "err", err)
		return
	}
	realtime.DefaultHub.Broadcast("hackathons-updated", hackathons)
}

// notifyAllUsers writes a hackathon-alert notification for every
// identity and broadcasts the realtime event. Fire-and-forget.
func notifyAllUsers(senderID uint, hackathon *models.Hackathon) {
	var userIDs []uint
	if err := lib.DB.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		slog.Warn("Failed to load users for hackathon alert", "err", err)
		return
	}

	message := "New Hackathon Alert: " + hackathon.Title

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, models.Notification{
			RecipientID: id,
			SenderID:    senderID,
			Type:        models.NotificationTypeHackathonAlert,
			Message:     message,
		})
	}

	if len(notifications) > 0 {
		if err := lib.DB.CreateInBatches(notifications, 100).Error; err != nil {
			slog.Warn("Failed to create hackathon notifications", "err", err)
		}
	}

	realtime.DefaultHub.Broadcast("newNotification", fiber.Map{
		"type":        models.NotificationTypeHackathonAlert,
		"message":     message,
		"hackathonId": hackathon.Id,
	})
}

// CreateHackathon adds an event to the catalog, alerts every identity,
// and broadcasts the refreshed catalog
func CreateHackathon(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		StartDate   time.Time `json:"startDate"`
		EndDate     time.Time `json:"endDate"`
		Location    string    `json:"location"`
		Website     string    `json:"website"`
		Themes      []string  `json:"themes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if body.Title == "" || body.Description == "" || body.StartDate.IsZero() || body.EndDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please add all required fields",
		})
	}

	if body.Location == "" {
		body.Location = "Online"
	}

	now := time.Now()
	hackathon := models.Hackathon{
		Title:       body.Title,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Location:    body.Location,
		Website:     body.Website,
		Themes:      body.Themes,
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := lib.HackathonCollection().InsertOne(c.Context(), hackathon)
	if err != nil {
		slog.Error("Failed to create hackathon", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create hackathon",
		})
	}
	hackathon.Id = result.InsertedID.(primitive.ObjectID)
	hackathon.Status = hackathon.StatusAt(now)

	notifyAllUsers(user.ID, &hackathon)
	broadcastCatalog()

	return c.Status(fiber.StatusCreated).JSON(hackathon)
}

// UpdateHackathon merges the provided fields into an existing hackathon
func UpdateHackathon(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid hackathon ID format",
		})
	}

	var body struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"startDate"`
		EndDate     *time.Time `json:"endDate"`
		Location    string     `json:"location"`
		Website     string     `json:"website"`
		Themes      []string   `json:"themes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if body.Title != "" {
		set["title"] = body.Title
	}
	if body.Description != "" {
		set["description"] = body.Description
	}
	if body.StartDate != nil {
		set["startDate"] = *body.StartDate
	}
	if body.EndDate != nil {
		set["endDate"] = *body.EndDate
	}
	if body.Location != "" {
		set["location"] = body.Location
	}
	if body.Website != "" {
		set["website"] = body.Website
	}
	if body.Themes != nil {
		set["themes"] = body.Themes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Hackathon
	err = lib.HackathonCollection().
		FindOneAndUpdate(c.Context(), bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Hackathon not found",
			})
		}
		slog.Error("Failed to update hackathon", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	updated.Status = updated.StatusAt(time.Now())
	broadcastCatalog()

	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteHackathon removes an event from the catalog
func DeleteHackathon(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid hackathon ID format",
		})
	}

	result, err := lib.HackathonCollection().DeleteOne(c.Context(), bson.M{"_id": id})
	if err != nil {
		slog.Error("Failed to delete hackathon", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Hackathon not found",
		})
	}

	broadcastCatalog()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Hackathon removed",
	})
}
