package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

// ErrLinkConflict is returned by LinkStudent when the conditional update
// matched no document: the token was already redeemed, revoked, or the family
// already has a student.
var ErrLinkConflict = errors.New("family link conflict")

// FamilyRepository defines the interface for family-related database operations.
type FamilyRepository interface {
	CreateFamily(ctx context.Context, family *model.Family) (*model.Family, error)
	GetFamily(ctx context.Context, id string) (*model.Family, error)
	GetFamilyByInviteToken(ctx context.Context, token string) (*model.Family, error)
	SetInviteToken(ctx context.Context, id string, token string) (*model.Family, error)
	LinkStudent(ctx context.Context, id string, inviteToken string, studentID bson.ObjectID) (*model.Family, error)
	DeleteFamily(ctx context.Context, id string) (*model.Family, error)
}

const familyCollection = "families"

type familyMongoRepository struct {
	db *mongo.Database
}

// NewFamilyMongoRepository creates the families repository. The invite token
// index is partial so that families without an outstanding invite do not
// collide on the missing value.
func NewFamilyMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) FamilyRepository {
	collection := db.Collection(familyCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "invite_token", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "invite_token", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
		{
			Keys: bson.D{{Key: "parent_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create family indexes")
	}

	return &familyMongoRepository{db: db}
}

func (r *familyMongoRepository) CreateFamily(ctx context.Context, family *model.Family) (*model.Family, error) {
	now := time.Now()
	family.CreatedAt = now
	family.UpdatedAt = now

	result, err := r.db.Collection(familyCollection).InsertOne(ctx, family)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		family.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return family, nil
}

func (r *familyMongoRepository) GetFamily(ctx context.Context, id string) (*model.Family, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(familyCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var family model.Family
	if err := result.Decode(&family); err != nil {
		return nil, err
	}

	return &family, nil
}

func (r *familyMongoRepository) GetFamilyByInviteToken(ctx context.Context, token string) (*model.Family, error) {
	result := r.db.Collection(familyCollection).FindOne(ctx, bson.M{"invite_token": token})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var family model.Family
	if err := result.Decode(&family); err != nil {
		return nil, err
	}

	return &family, nil
}

// SetInviteToken overwrites the family's invite token unconditionally. Issuing
// a fresh invite revokes any prior unused one.
func (r *familyMongoRepository) SetInviteToken(ctx context.Context, id string, token string) (*model.Family, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(familyCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"invite_token": token,
			"updated_at":   time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var family model.Family
	if err := result.Decode(&family); err != nil {
		return nil, err
	}

	return &family, nil
}

// DeleteFamily removes a family record. Used only to compensate a failed
// multi-step signup.
func (r *familyMongoRepository) DeleteFamily(ctx context.Context, id string) (*model.Family, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(familyCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var family model.Family
	if err := result.Decode(&family); err != nil {
		return nil, err
	}

	return &family, nil
}

// LinkStudent performs the single-use redemption as one atomic conditional
// update: it sets the student and clears the invite token only if the token
// still matches the value the caller read and no student is linked yet. Two
// concurrent redemptions of the same token therefore resolve to exactly one
// winner; the loser gets ErrLinkConflict.
func (r *familyMongoRepository) LinkStudent(
	ctx context.Context,
	id string,
	inviteToken string,
	studentID bson.ObjectID,
) (*model.Family, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(familyCollection).FindOneAndUpdate(
		ctx,
		bson.M{
			"_id":          objectID,
			"invite_token": inviteToken,
			"student_id":   bson.M{"$exists": false},
		},
		bson.M{
			"$set": bson.M{
				"student_id": studentID,
				"updated_at": time.Now(),
			},
			"$unset": bson.M{"invite_token": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrLinkConflict
		}

		return nil, result.Err()
	}

	var family model.Family
	if err := result.Decode(&family); err != nil {
		return nil, err
	}

	return &family, nil
}
