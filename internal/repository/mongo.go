package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/messenger-backend/config"
)

const opTimeout = 5 * time.Second

type MongoRepository struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Users        *mongo.Collection
	Chats        *mongo.Collection
	Messages     *mongo.Collection
	Contacts     *mongo.Collection
	JoinRequests *mongo.Collection
	Reminders    *mongo.Collection
}

// NewMongoRepository initializes the MongoDB connection and collections
func NewMongoRepository(cfg *config.Config) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDB)
	return &MongoRepository{
		Client:       client,
		DB:           db,
		Users:        db.Collection("users"),
		Chats:        db.Collection("chats"),
		Messages:     db.Collection("messages"),
		Contacts:     db.Collection("contacts"),
		JoinRequests: db.Collection("join_requests"),
		Reminders:    db.Collection("reminders"),
	}, nil
}

// Disconnect closes the MongoDB connection
func (r *MongoRepository) Disconnect(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}

func opCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, opTimeout)
}
