package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

// ContentRepository defines read and seed operations for the static dashboard
// content collections.
type ContentRepository interface {
	ListColleges(ctx context.Context) ([]model.College, error)
	ListDefaultMilestones(ctx context.Context) ([]model.Milestone, error)
	ListTips(ctx context.Context) ([]model.Tip, error)
	ReplaceColleges(ctx context.Context, colleges []model.College) error
	ReplaceMilestones(ctx context.Context, milestones []model.Milestone) error
	ReplaceTips(ctx context.Context, tips []model.Tip) error
}

const (
	collegeCollection   = "colleges"
	milestoneCollection = "milestones"
	tipCollection       = "tips"
)

type contentMongoRepository struct {
	db *mongo.Database
}

func NewContentMongoRepository(db *mongo.Database) ContentRepository {
	return &contentMongoRepository{db: db}
}

func (r *contentMongoRepository) ListColleges(ctx context.Context) ([]model.College, error) {
	cursor, err := r.db.Collection(collegeCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var colleges []model.College
	if err := cursor.All(ctx, &colleges); err != nil {
		return nil, err
	}

	return colleges, nil
}

func (r *contentMongoRepository) ListDefaultMilestones(ctx context.Context) ([]model.Milestone, error) {
	cursor, err := r.db.Collection(milestoneCollection).Find(ctx, bson.M{"is_default": true})
	if err != nil {
		return nil, err
	}

	var milestones []model.Milestone
	if err := cursor.All(ctx, &milestones); err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *contentMongoRepository) ListTips(ctx context.Context) ([]model.Tip, error) {
	cursor, err := r.db.Collection(tipCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var tips []model.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, err
	}

	return tips, nil
}

func (r *contentMongoRepository) ReplaceColleges(ctx context.Context, colleges []model.College) error {
	collection := r.db.Collection(collegeCollection)
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	docs := make([]any, len(colleges))
	for i := range colleges {
		docs[i] = colleges[i]
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

func (r *contentMongoRepository) ReplaceMilestones(ctx context.Context, milestones []model.Milestone) error {
	collection := r.db.Collection(milestoneCollection)
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	docs := make([]any, len(milestones))
	for i := range milestones {
		docs[i] = milestones[i]
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}

func (r *contentMongoRepository) ReplaceTips(ctx context.Context, tips []model.Tip) error {
	collection := r.db.Collection(tipCollection)
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	docs := make([]any, len(tips))
	for i := range tips {
		docs[i] = tips[i]
	}

	_, err := collection.InsertMany(ctx, docs)
	return err
}
