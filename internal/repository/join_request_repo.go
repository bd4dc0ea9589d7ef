package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
)

func (r *MongoRepository) InsertRequest(ctx context.Context, req *models.JoinRequest) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.JoinRequests.InsertOne(ctx, req)
	return err
}

func (r *MongoRepository) RequestsForChat(ctx context.Context, chatID string) ([]models.JoinRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.JoinRequests.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}

	var requests []models.JoinRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MongoRepository) GetRequest(ctx context.Context, chatID, requestID string) (*models.JoinRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var req models.JoinRequest
	err := r.JoinRequests.FindOne(ctx, bson.M{"_id": requestID, "chat_id": chatID}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("join request %s: %w", requestID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MongoRepository) DeleteRequest(ctx context.Context, chatID, requestID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.JoinRequests.DeleteOne(ctx, bson.M{"_id": requestID, "chat_id": chatID})
	return err
}

func (r *MongoRepository) DeleteRequestsForChat(ctx context.Context, chatID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.JoinRequests.DeleteMany(ctx, bson.M{"chat_id": chatID})
	return err
}
