package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

type memContentRepo struct {
	colleges   []model.College
	milestones []model.Milestone
	tips       []model.Tip
}

func (r *memContentRepo) ListColleges(context.Context) ([]model.College, error) {
	return append([]model.College(nil), r.colleges...), nil
}

func (r *memContentRepo) ListDefaultMilestones(context.Context) ([]model.Milestone, error) {
	var out []model.Milestone
	for _, m := range r.milestones {
		if m.IsDefault {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memContentRepo) ListTips(context.Context) ([]model.Tip, error) {
	return append([]model.Tip(nil), r.tips...), nil
}

func (r *memContentRepo) ReplaceColleges(_ context.Context, colleges []model.College) error {
	r.colleges = colleges
	return nil
}

func (r *memContentRepo) ReplaceMilestones(_ context.Context, milestones []model.Milestone) error {
	r.milestones = milestones
	return nil
}

func (r *memContentRepo) ReplaceTips(_ context.Context, tips []model.Tip) error {
	r.tips = tips
	return nil
}

func TestCollegeMatches_SamplesAtMostThree(t *testing.T) {
	t.Parallel()

	contentRepo := &memContentRepo{
		colleges: []model.College{
			{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"},
		},
	}
	dashboardUsecase := NewDashboardUsecase(contentRepo)

	matches, err := dashboardUsecase.CollegeMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestCollegeMatches_EmptyCatalog(t *testing.T) {
	t.Parallel()

	dashboardUsecase := NewDashboardUsecase(&memContentRepo{})

	matches, err := dashboardUsecase.CollegeMatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFamilyDashboard_AssemblesContent(t *testing.T) {
	t.Parallel()

	contentRepo := &memContentRepo{
		milestones: []model.Milestone{
			{Text: "Draft essays.", IsDefault: true},
			{Text: "Custom milestone.", IsDefault: false},
		},
		tips: []model.Tip{{Text: "Start early."}},
	}
	dashboardUsecase := NewDashboardUsecase(contentRepo)

	data, err := dashboardUsecase.FamilyDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Draft essays."}, data.MonthlyFocus)
	assert.Equal(t, []string{"Start early."}, data.InsiderTips)
	assert.NotEmpty(t, data.SoulScanProfile.IdentityTraits)
	assert.NotEmpty(t, data.SupportCircle.PeerProgressStats)
}
