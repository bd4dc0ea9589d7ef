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

func (r *MongoRepository) InsertContact(ctx context.Context, c *models.Contact) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Contacts.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("contact %s: %w", c.ContactUserID, apperrors.ErrAlreadyExists)
	}
	return err
}

func (r *MongoRepository) ContactsForOwner(ctx context.Context, ownerID string) ([]models.Contact, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.Contacts.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *MongoRepository) GetContact(ctx context.Context, ownerID, contactUserID string) (*models.Contact, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var c models.Contact
	err := r.Contacts.FindOne(ctx, bson.M{"owner_id": ownerID, "contact_user_id": contactUserID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("contact %s: %w", contactUserID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) RenameContact(ctx context.Context, ownerID, contactUserID, displayName string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Contacts.UpdateOne(ctx,
		bson.M{"owner_id": ownerID, "contact_user_id": contactUserID},
		bson.M{"$set": bson.M{"display_name": displayName}},
	)
	return err
}

func (r *MongoRepository) SetFavorite(ctx context.Context, ownerID, contactUserID string, favorite bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Contacts.UpdateOne(ctx,
		bson.M{"owner_id": ownerID, "contact_user_id": contactUserID},
		bson.M{"$set": bson.M{"is_favorite": favorite}},
	)
	return err
}

func (r *MongoRepository) DeleteContact(ctx context.Context, ownerID, contactUserID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Contacts.DeleteOne(ctx, bson.M{"owner_id": ownerID, "contact_user_id": contactUserID})
	return err
}
