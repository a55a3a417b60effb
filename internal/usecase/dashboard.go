package usecase

import (
	"context"
	"math/rand"

	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
)

const maxCollegeMatches = 3

// DashboardUsecase aggregates the static dashboard content.
type DashboardUsecase interface {
	CollegeMatches(ctx context.Context) ([]model.College, error)
	FamilyDashboard(ctx context.Context) (*DashboardData, error)
}

// SoulScanProfile is the student profile block shown on the dashboard.
type SoulScanProfile struct {
	IdentityTraits []string `json:"identity_traits"`
	LearningStyle  []string `json:"learning_style"`
	Motivations    []string `json:"motivations"`
	CareerVibes    []string `json:"career_vibes"`
}

// SupportCircle is the community block shown on the dashboard.
type SupportCircle struct {
	PeerProgressStats   string   `json:"peer_progress_stats"`
	LeaderboardGlimpse  []string `json:"leaderboard_glimpse"`
	ParentBoardPreview  string   `json:"parent_board_preview"`
	StudentBoardPreview string   `json:"student_board_preview"`
}

// DashboardData is the family dashboard payload.
type DashboardData struct {
	MonthlyFocus    []string        `json:"monthlyFocus"`
	SoulScanProfile SoulScanProfile `json:"soulScanProfile"`
	SupportCircle   SupportCircle   `json:"supportCircle"`
	InsiderTips     []string        `json:"insiderTips"`
}

type dashboardUsecase struct {
	contentRepo repository.ContentRepository
}

// NewDashboardUsecase creates a new instance of DashboardUsecase.
func NewDashboardUsecase(contentRepo repository.ContentRepository) DashboardUsecase {
	return &dashboardUsecase{contentRepo: contentRepo}
}

// CollegeMatches returns a random sample of colleges. Matching against the
// student profile is simulated; the shuffle keeps the list feeling curated.
func (u *dashboardUsecase) CollegeMatches(ctx context.Context) ([]model.College, error) {
	colleges, err := u.contentRepo.ListColleges(ctx)
	if err != nil {
		return nil, err
	}

	if len(colleges) == 0 {
		return []model.College{}, nil
	}

	rand.Shuffle(len(colleges), func(i, j int) {
		colleges[i], colleges[j] = colleges[j], colleges[i]
	})

	if len(colleges) > maxCollegeMatches {
		colleges = colleges[:maxCollegeMatches]
	}

	return colleges, nil
}

// FamilyDashboard assembles the dashboard from seeded milestones and tips plus
// the static profile and support-circle blocks.
func (u *dashboardUsecase) FamilyDashboard(ctx context.Context) (*DashboardData, error) {
	milestones, err := u.contentRepo.ListDefaultMilestones(ctx)
	if err != nil {
		return nil, err
	}

	monthlyFocus := make([]string, 0, len(milestones))
	for _, m := range milestones {
		monthlyFocus = append(monthlyFocus, m.Text)
	}

	tips, err := u.contentRepo.ListTips(ctx)
	if err != nil {
		return nil, err
	}

	insiderTips := make([]string, 0, len(tips))
	for _, t := range tips {
		insiderTips = append(insiderTips, t.Text)
	}

	return &DashboardData{
		MonthlyFocus: monthlyFocus,
		SoulScanProfile: SoulScanProfile{
			IdentityTraits: []string{"Curious", "Analytical", "Creative", "Empathetic"},
			LearningStyle:  []string{"Hands-on", "Collaborative", "Self-directed"},
			Motivations:    []string{"Impact", "Innovation", "Personal Growth"},
			CareerVibes:    []string{"Research", "Arts & Culture", "Social Impact"},
		},
		SupportCircle: SupportCircle{
			PeerProgressStats: "85% of students in your cohort have started their essays.",
			LeaderboardGlimpse: []string{
				"Top Essay Drafts: Alex C., Maya S.",
				"Most College Visits: Ben T., Chloe L.",
			},
			ParentBoardPreview:  "Discussion: 'Navigating financial aid forms.'",
			StudentBoardPreview: "Poll: 'What's your biggest college application stress?'",
		},
		InsiderTips: insiderTips,
	}, nil
}
