package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hackathon struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	StartDate   time.Time          `json:"startDate" bson:"startDate"`
	EndDate     time.Time          `json:"endDate" bson:"endDate"`
	Location    string             `json:"location" bson:"location"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Themes      []string           `json:"themes,omitempty" bson:"themes,omitempty"`
	CreatedBy   uint               `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
	// Status is derived from the time window, never stored
	Status HackathonStatus `json:"status" bson:"-"`
}

type HackathonStatus string

const (
	HackathonStatusUpcoming  HackathonStatus = "upcoming"
	HackathonStatusOngoing   HackathonStatus = "ongoing"
	HackathonStatusCompleted HackathonStatus = "completed"
)

// StatusAt derives the hackathon status from its time window
func (h *Hackathon) StatusAt(now time.Time) HackathonStatus {
	switch {
	case h.StartDate.After(now):
		return HackathonStatusUpcoming
	case h.EndDate.Before(now):
		return HackathonStatusCompleted
	default:
		return HackathonStatusOngoing
	}
}

// HackathonStatusFilter maps a status query value to a mongo date filter.
// "past" is accepted as an alias for "completed". Unknown values match all.
func HackathonStatusFilter(status string, now time.Time) bson.M {
	switch status {
	case "upcoming":
		return bson.M{"startDate": bson.M{"$gt": now}}
	case "ongoing":
		return bson.M{"startDate": bson.M{"$lte": now}, "endDate": bson.M{"$gte": now}}
	case "completed", "past":
		return bson.M{"endDate": bson.M{"$lt": now}}
	default:
		return bson.M{}
	}
}

// HackathonSearchFilter builds a case-insensitive substring match on
// title and description
func HackathonSearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	regex := primitive.Regex{Pattern: search, Options: "i"}
	return bson.M{
		"$or": []bson.M{
			{"title": regex},
			{"description": regex},
		},
	}
}
