package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
)

func (r *MongoRepository) InsertMessage(ctx context.Context, m *models.Message) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Messages.InsertOne(ctx, m)
	return err
}

func (r *MongoRepository) GetMessage(ctx context.Context, chatID, messageID string) (*models.Message, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var m models.Message
	err := r.Messages.FindOne(ctx, bson.M{"_id": messageID, "chat_id": chatID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MessagesForChat returns the full message list ascending by created_at, the
// sole sort key for display.
func (r *MongoRepository) MessagesForChat(ctx context.Context, chatID string) ([]models.Message, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.Messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MongoRepository) LatestMessage(ctx context.Context, chatID string) (*models.Message, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.FindOne().SetSort(bson.M{"created_at": -1})
	var m models.Message
	err := r.Messages.FindOne(ctx, bson.M{"chat_id": chatID}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MongoRepository) UpdateMessageText(ctx context.Context, chatID, messageID, text string, editedAt time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Messages.UpdateOne(ctx, bson.M{"_id": messageID, "chat_id": chatID}, bson.M{
		"$set": bson.M{"text": text, "edited_at": editedAt},
	})
	return err
}

func (r *MongoRepository) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Messages.DeleteOne(ctx, bson.M{"_id": messageID, "chat_id": chatID})
	return err
}

func (r *MongoRepository) SetReaction(ctx context.Context, chatID, messageID, userID string, on bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var update bson.M
	if on {
		update = bson.M{"$addToSet": bson.M{"reacted_by": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"reacted_by": userID}}
	}
	_, err := r.Messages.UpdateOne(ctx, bson.M{"_id": messageID, "chat_id": chatID}, update)
	return err
}
