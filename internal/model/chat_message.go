package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SenderRoleAdvisor marks messages produced by the advisor stub rather than a member.
const SenderRoleAdvisor = "ai"

// ChatMessage is a single message in a family's conversation thread.
// SenderID is nil for advisor messages.
type ChatMessage struct {
	ID         bson.ObjectID  `bson:"_id,omitempty"`
	FamilyID   bson.ObjectID  `bson:"family_id"`
	SenderID   *bson.ObjectID `bson:"sender_id,omitempty"`
	SenderRole string         `bson:"sender_role"`
	Content    string         `bson:"content"`
	Timestamp  time.Time      `bson:"timestamp"`
	Metadata   map[string]any `bson:"metadata"`
}
