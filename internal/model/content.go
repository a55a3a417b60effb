package model

import "go.mongodb.org/mongo-driver/v2/bson"

// RichMediaLink points at supporting media for a college entry.
type RichMediaLink struct {
	Type string `bson:"type" json:"type"`
	URL  string `bson:"url"  json:"url"`
}

// College is a curated college entry shown on the matches screen.
type College struct {
	ID                      bson.ObjectID   `bson:"_id,omitempty"`
	Name                    string          `bson:"name"`
	AcceptanceRate          string          `bson:"acceptance_rate"`
	Tuition                 string          `bson:"tuition"`
	EmotionalTagline        string          `bson:"emotional_tagline"`
	RichMediaLinks          []RichMediaLink `bson:"rich_media_links"`
	DefaultFitReason        string          `bson:"default_fit_reason,omitempty"`
	DefaultFitReasonStudent string          `bson:"default_fit_reason_student,omitempty"`
}

// Milestone is a dashboard task suggestion.
type Milestone struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Text      string        `bson:"text"`
	Month     string        `bson:"month,omitempty"`
	IsDefault bool          `bson:"is_default"`
}

// Tip is a one-line admissions tip shown on the dashboard.
type Tip struct {
	ID   bson.ObjectID `bson:"_id,omitempty"`
	Text string        `bson:"text"`
}
