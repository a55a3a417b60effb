package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

// ChatMessageRepository defines the interface for chat message operations.
type ChatMessageRepository interface {
	CreateMessage(ctx context.Context, message *model.ChatMessage) (*model.ChatMessage, error)
	ListByFamily(ctx context.Context, familyID string) ([]model.ChatMessage, error)
}

const chatMessageCollection = "chat_messages"

type chatMessageMongoRepository struct {
	db *mongo.Database
}

func NewChatMessageMongoRepository(db *mongo.Database) ChatMessageRepository {
	return &chatMessageMongoRepository{db: db}
}

func (r *chatMessageMongoRepository) CreateMessage(
	ctx context.Context,
	message *model.ChatMessage,
) (*model.ChatMessage, error) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	result, err := r.db.Collection(chatMessageCollection).InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		message.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return message, nil
}

func (r *chatMessageMongoRepository) ListByFamily(ctx context.Context, familyID string) ([]model.ChatMessage, error) {
	objectID, err := bson.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.db.Collection(chatMessageCollection).Find(
		ctx,
		bson.M{"family_id": objectID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var messages []model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}
