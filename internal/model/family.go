package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Family is the household unit linking one parent to at most one student.
// InviteToken, when set, authorizes exactly one student signup; it is cleared
// atomically the moment a student is linked.
type Family struct {
	ID          bson.ObjectID  `bson:"_id,omitempty"`
	ParentID    bson.ObjectID  `bson:"parent_id"`
	StudentID   *bson.ObjectID `bson:"student_id,omitempty"`
	InviteToken *string        `bson:"invite_token,omitempty"`
	CreatedAt   time.Time      `bson:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}
