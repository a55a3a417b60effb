package payload

import "github.com/emmaworks/family-advisor-api/internal/model"

type CollegeMatch struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	AcceptanceRate   string                `json:"acceptanceRate"`
	Tuition          string                `json:"tuition"`
	EmotionalTagline string                `json:"emotionalTagline"`
	FitReason        string                `json:"fitReason,omitempty"`
	FitReasonStudent string                `json:"fitReasonStudent,omitempty"`
	RichMediaLinks   []model.RichMediaLink `json:"richMediaLinks"`
}

// NewCollegeMatch maps a college to its matches-screen view.
func NewCollegeMatch(college model.College) CollegeMatch {
	links := college.RichMediaLinks
	if links == nil {
		links = []model.RichMediaLink{}
	}

	return CollegeMatch{
		ID:               college.ID.Hex(),
		Name:             college.Name,
		AcceptanceRate:   college.AcceptanceRate,
		Tuition:          college.Tuition,
		EmotionalTagline: college.EmotionalTagline,
		FitReason:        college.DefaultFitReason,
		FitReasonStudent: college.DefaultFitReasonStudent,
		RichMediaLinks:   links,
	}
}
