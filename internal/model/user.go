package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role distinguishes the two kinds of family members.
type Role string

const (
	RoleParent  Role = "parent"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleStudent:
		return true
	}
	return false
}

// User represents a registered family member.
type User struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password_hash"`
	Role         Role           `bson:"role"`
	Verified     bool           `bson:"verified"`
	Profile      map[string]any `bson:"profile"`
	FamilyID     *bson.ObjectID `bson:"family_id,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}
