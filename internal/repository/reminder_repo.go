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

func (r *MongoRepository) InsertReminder(ctx context.Context, rem *models.Reminder) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Reminders.InsertOne(ctx, rem)
	return err
}

func (r *MongoRepository) RemindersForOwner(ctx context.Context, ownerID string) ([]models.Reminder, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"at": 1})
	cursor, err := r.Reminders.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *MongoRepository) GetReminder(ctx context.Context, ownerID, reminderID string) (*models.Reminder, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var rem models.Reminder
	err := r.Reminders.FindOne(ctx, bson.M{"_id": reminderID, "owner_id": ownerID}).Decode(&rem)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("reminder %s: %w", reminderID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *MongoRepository) DeleteReminder(ctx context.Context, ownerID, reminderID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Reminders.DeleteOne(ctx, bson.M{"_id": reminderID, "owner_id": ownerID})
	return err
}
