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

func (r *MongoRepository) InsertChat(ctx context.Context, c *models.Chat) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.InsertOne(ctx, c)
	return err
}

func (r *MongoRepository) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var c models.Chat
	err := r.Chats.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("chat %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) ChatsForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := r.Chats.Find(ctx, bson.M{"member_ids": userID}, opts)
	if err != nil {
		return nil, err
	}

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoRepository) DirectChatsWithMember(ctx context.Context, userID string) ([]models.Chat, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cursor, err := r.Chats.Find(ctx, bson.M{"type": models.ChatDirect, "member_ids": userID})
	if err != nil {
		return nil, err
	}

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoRepository) FindChatByInviteCode(ctx context.Context, code string) (*models.Chat, error) {
	if code == "" {
		// a revoked chat stores "" and must never resolve
		return nil, apperrors.ErrInviteInvalid
	}
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var c models.Chat
	err := r.Chats.FindOne(ctx, bson.M{"invite_code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrInviteInvalid
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) SetLastMessage(ctx context.Context, chatID, text, senderID string, at *time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$set": bson.M{
			"last_message_text":      text,
			"last_message_sender_id": senderID,
			"last_message_at":        at,
			"updated_at":             time.Now(),
		},
	})
	return err
}

func (r *MongoRepository) ClearLastMessage(ctx context.Context, chatID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$set": bson.M{
			"last_message_text": "",
			"updated_at":        time.Now(),
		},
		"$unset": bson.M{
			"last_message_sender_id": "",
			"last_message_at":        "",
		},
	})
	return err
}

// SetTyping keeps the structured map and the legacy id set on the same on/off
// transition by touching both in one update.
func (r *MongoRepository) SetTyping(ctx context.Context, chatID, userID string, mode *models.TypingMode) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	field := "typing_states." + userID
	var update bson.M
	if mode != nil {
		update = bson.M{
			"$set":      bson.M{field: *mode},
			"$addToSet": bson.M{"typing_user_ids": userID},
		}
	} else {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$pull":  bson.M{"typing_user_ids": userID},
		}
	}
	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	return err
}

func (r *MongoRepository) SetMembers(ctx context.Context, chatID string, memberIDs []string, adminID *string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	set := bson.M{"member_ids": memberIDs, "updated_at": time.Now()}
	if adminID != nil {
		set["admin_id"] = *adminID
	}
	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$set": set})
	return err
}

func (r *MongoRepository) AddMember(ctx context.Context, chatID, userID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$addToSet": bson.M{"member_ids": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	return err
}

func (r *MongoRepository) SetAdmin(ctx context.Context, chatID, userID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$set": bson.M{"admin_id": userID, "updated_at": time.Now()},
	})
	return err
}

func (r *MongoRepository) SetInvite(ctx context.Context, chatID string, code string, expiresAt *time.Time) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var update bson.M
	if code == "" {
		update = bson.M{
			"$unset": bson.M{"invite_code": "", "invite_expires_at": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{
				"invite_code":       code,
				"invite_expires_at": expiresAt,
				"updated_at":        time.Now(),
			},
		}
	}
	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	return err
}

func (r *MongoRepository) SetJoinApproval(ctx context.Context, chatID string, required bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$set": bson.M{"join_approval_required": required, "updated_at": time.Now()},
	})
	return err
}
