package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmaworks/family-advisor-api/internal/model"
)

type linkingFixture struct {
	usecase    AccountLinkingUsecase
	userRepo   *memUserRepo
	familyRepo *memFamilyRepo
	mailer     *fakeMailer
}

func newLinkingFixture(t *testing.T) *linkingFixture {
	t.Helper()

	userRepo := newMemUserRepo()
	familyRepo := newMemFamilyRepo()
	mailer := &fakeMailer{}
	logger := zerolog.Nop()

	return &linkingFixture{
		usecase:    NewAccountLinkingUsecase(userRepo, familyRepo, fakeHasher{}, mailer, &logger),
		userRepo:   userRepo,
		familyRepo: familyRepo,
		mailer:     mailer,
	}
}

func signupParent(t *testing.T, f *linkingFixture, email string) *model.User {
	t.Helper()

	user, err := f.usecase.SignupParent(context.Background(), SignupParams{
		Email:    email,
		Password: "pw",
		Profile:  map[string]any{},
	})
	require.NoError(t, err)

	return user
}

func TestSignupParent_CreatesLinkedFamily(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)

	user := signupParent(t, f, "a@x.com")

	assert.Equal(t, model.RoleParent, user.Role)
	assert.False(t, user.Verified)
	assert.Equal(t, "hashed:pw", user.PasswordHash)
	require.NotNil(t, user.FamilyID)

	family, err := f.familyRepo.GetFamily(context.Background(), user.FamilyID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.ID, family.ParentID)
	assert.Nil(t, family.StudentID)
	assert.Nil(t, family.InviteToken)
}

func TestSignupParent_NormalizesEmail(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)

	user := signupParent(t, f, "  Parent@X.COM ")
	assert.Equal(t, "parent@x.com", user.Email)

	_, err := f.usecase.SignupParent(context.Background(), SignupParams{
		Email:    "parent@x.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupParent_EmailTaken(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)

	signupParent(t, f, "a@x.com")

	_, err := f.usecase.SignupParent(context.Background(), SignupParams{
		Email:    "a@x.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, f.userRepo.count())
}

func TestSignupParent_CompensatesFailedFamilyCreate(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	f.familyRepo.createErr = errors.New("store unavailable")

	_, err := f.usecase.SignupParent(context.Background(), SignupParams{
		Email:    "a@x.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, ErrAccountCreationFailed)
	assert.Equal(t, 0, f.userRepo.count(), "orphaned user must be discarded")
}

func TestSignupParent_CompensatesFailedLinkBack(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	f.userRepo.updateErr = errors.New("store unavailable")

	_, err := f.usecase.SignupParent(context.Background(), SignupParams{
		Email:    "a@x.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, ErrAccountCreationFailed)
	assert.Equal(t, 0, f.userRepo.count())
	assert.Empty(t, f.familyRepo.families)
}

func TestGenerateInvite_Checks(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	student := &model.User{Role: model.RoleStudent}
	_, err := f.usecase.GenerateInvite(ctx, student, "")
	assert.ErrorIs(t, err, ErrForbidden)

	parentWithoutFamily := &model.User{Role: model.RoleParent}
	_, err = f.usecase.GenerateInvite(ctx, parentWithoutFamily, "")
	assert.ErrorIs(t, err, ErrNoFamily)

	parent := signupParent(t, f, "a@x.com")
	_, err = f.familyRepo.DeleteFamily(ctx, parent.FamilyID.Hex())
	require.NoError(t, err)

	_, err = f.usecase.GenerateInvite(ctx, parent, "")
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}

func TestGenerateInvite_TokenProperties(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")

	token, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(token), 22, "token must carry at least 16 bytes of entropy")

	second, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestGenerateInvite_MailsStudent(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	parent := signupParent(t, f, "a@x.com")

	_, err := f.usecase.GenerateInvite(context.Background(), parent, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com"}, f.mailer.sent)
}

func TestGenerateInvite_MailFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	f.mailer.sendErr = errors.New("smtp down")
	parent := signupParent(t, f, "a@x.com")

	token, err := f.usecase.GenerateInvite(context.Background(), parent, "b@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestSignupStudent_HappyPath(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")
	token, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)

	student, err := f.usecase.SignupStudent(ctx, token, SignupParams{
		Email:    "b@x.com",
		Password: "pw2",
		Profile:  map[string]any{},
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleStudent, student.Role)
	assert.True(t, student.Verified, "possession of a valid invite implies verification")
	require.NotNil(t, student.FamilyID)
	assert.Equal(t, parent.FamilyID.Hex(), student.FamilyID.Hex())

	family, err := f.familyRepo.GetFamily(ctx, parent.FamilyID.Hex())
	require.NoError(t, err)
	require.NotNil(t, family.StudentID)
	assert.Equal(t, student.ID, *family.StudentID)
	assert.Nil(t, family.InviteToken, "token must be cleared on redemption")
}

func TestSignupStudent_RedeemedTokenFails(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")
	token, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)

	_, err = f.usecase.SignupStudent(ctx, token, SignupParams{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = f.usecase.SignupStudent(ctx, token, SignupParams{Email: "c@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInvite)
}

func TestSignupStudent_RegeneratedInviteRevokesPrior(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")

	first, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)
	second, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)

	_, err = f.usecase.SignupStudent(ctx, first, SignupParams{Email: "b@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidInvite)

	_, err = f.usecase.SignupStudent(ctx, second, SignupParams{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)
}

func TestSignupStudent_EmailTaken(t *testing.T) {
	t.Parallel()

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")
	token, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)

	_, err = f.usecase.SignupStudent(ctx, token, SignupParams{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The invite survives the rejected signup.
	_, err = f.usecase.SignupStudent(ctx, token, SignupParams{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)
}

func TestSignupStudent_ConcurrentRedemption(t *testing.T) {
	t.Parallel()

	const redeemers = 8

	f := newLinkingFixture(t)
	ctx := context.Background()

	parent := signupParent(t, f, "a@x.com")
	token, err := f.usecase.GenerateInvite(ctx, parent, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, redeemers)

	for i := 0; i < redeemers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			email := string(rune('b'+i)) + "@x.com"
			_, err := f.usecase.SignupStudent(ctx, token, SignupParams{
				Email:    email,
				Password: "pw",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInvalidInvite) || errors.Is(err, ErrAlreadyLinked):
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent redemption must win")

	family, err := f.familyRepo.GetFamily(ctx, parent.FamilyID.Hex())
	require.NoError(t, err)
	assert.NotNil(t, family.StudentID)
	assert.Nil(t, family.InviteToken)

	// The parent plus the single winning student remain; losers were discarded.
	assert.Equal(t, 2, f.userRepo.count())
}
