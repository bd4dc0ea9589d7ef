package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
)

func (r *MongoRepository) InsertUser(ctx context.Context, u *models.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user %s: %w", u.ID, apperrors.ErrAlreadyExists)
	}
	return err
}

func (r *MongoRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var u models.User
	err := r.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindUserByPhoneNormalized(ctx context.Context, phone string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"phone_normalized": phone})
}

func (r *MongoRepository) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var u models.User
	err := r.Users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) SetPresence(ctx context.Context, id string, online bool, lastSeen time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"online": online, "last_seen": lastSeen},
	})
	return err
}

func (r *MongoRepository) UpdateProfile(ctx context.Context, id string, displayName, statusMessage *string) error {
	set := bson.M{}
	if displayName != nil {
		set["display_name"] = *displayName
	}
	if statusMessage != nil {
		set["status_message"] = *statusMessage
	}
	if len(set) == 0 {
		return nil
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *MongoRepository) SetAvatarURL(ctx context.Context, id, url string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"avatar_url": url}})
	return err
}
