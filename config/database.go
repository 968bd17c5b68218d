package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

func ConnectDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("Unable to connect to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatalf("Unable to ping MongoDB: %v", err)
	}

	MongoClient = client
	DB = client.Database(AppConfig.MongoDBName)

	if err := ensureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Database connected successfully")
}

// ensureIndexes creates the unique email index on users. Mongo treats
// index creation as idempotent, so this runs on every boot.
func ensureIndexes(ctx context.Context) error {
	_, err := DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func CloseDB() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		MongoClient.Disconnect(ctx)
		log.Println("Database connection closed")
	}
}
