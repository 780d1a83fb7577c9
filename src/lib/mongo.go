package lib

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var Mongo *mongo.Database

// ConnectMongo connects to MongoDB and sets the global Mongo database handle.
// The hackathon catalog lives here; everything else is in SQLite.
func ConnectMongo(uri, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		panic("Failed to connect to MongoDB: " + err.Error())
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		panic("Failed to ping MongoDB: " + err.Error())
	}

	Mongo = client.Database(dbName)
	slog.Info("Connected to MongoDB", "db", dbName)
}

// HackathonCollection returns the hackathons collection
func HackathonCollection() *mongo.Collection {
	return Mongo.Collection("hackathons")
}
