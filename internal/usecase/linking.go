package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
	"github.com/emmaworks/family-advisor-api/internal/security"
)

// AccountLinkingUsecase orchestrates parent signup, invite generation, and
// student redemption.
type AccountLinkingUsecase interface {
	SignupParent(ctx context.Context, params SignupParams) (*model.User, error)
	GenerateInvite(ctx context.Context, caller *model.User, notifyEmail string) (string, error)
	SignupStudent(ctx context.Context, inviteToken string, params SignupParams) (*model.User, error)
}

// SignupParams defines the parameters for creating an account.
type SignupParams struct {
	Email    string
	Password string
	Profile  map[string]any
}

// InviteMailer delivers invite links. Delivery is best effort and never fails
// the invite operation.
type InviteMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrAccountCreationFailed = errors.New("failed to create account")
	ErrForbidden             = errors.New("operation not permitted")
	ErrNoFamily              = errors.New("user is not associated with a family")
	ErrFamilyNotFound        = errors.New("family not found")
	ErrInvalidInvite         = errors.New("invalid invite token")
	ErrAlreadyLinked         = errors.New("family already has a student registered")
)

const inviteTokenBytes = 16

type accountLinkingUsecase struct {
	userRepo   repository.UserRepository
	familyRepo repository.FamilyRepository
	hasher     security.Hasher
	mailer     InviteMailer
	logger     *zerolog.Logger
}

// NewAccountLinkingUsecase creates a new instance of AccountLinkingUsecase.
// The mailer may be nil, in which case invite notifications are skipped.
func NewAccountLinkingUsecase(
	userRepo repository.UserRepository,
	familyRepo repository.FamilyRepository,
	hasher security.Hasher,
	mailer InviteMailer,
	logger *zerolog.Logger,
) AccountLinkingUsecase {
	return &accountLinkingUsecase{
		userRepo:   userRepo,
		familyRepo: familyRepo,
		hasher:     hasher,
		mailer:     mailer,
		logger:     logger,
	}
}

// SignupParent creates the parent account together with its family record.
// The user insert, family insert, and link-back update are not a store-level
// transaction; failures after the first insert are compensated with
// best-effort deletes so the caller never sees a half-created account as
// usable.
func (u *accountLinkingUsecase) SignupParent(ctx context.Context, params SignupParams) (*model.User, error) {
	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: passwordHash,
		Role:         model.RoleParent,
		Verified:     false,
		Profile:      params.Profile,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	family, err := u.familyRepo.CreateFamily(ctx, &model.Family{ParentID: user.ID})
	if err != nil {
		u.discardUser(ctx, user.ID.Hex())
		return nil, ErrAccountCreationFailed
	}

	user, err = u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		FamilyID: &family.ID,
	})
	if err != nil {
		u.discardFamily(ctx, family.ID.Hex())
		u.discardUser(ctx, family.ParentID.Hex())
		return nil, ErrAccountCreationFailed
	}

	return user, nil
}

// GenerateInvite issues a fresh single-use invite token for the caller's
// family. Any previously issued unredeemed token is silently revoked. When
// notifyEmail is set and a mailer is configured, the token is mailed to the
// student; delivery failure does not fail the operation.
func (u *accountLinkingUsecase) GenerateInvite(
	ctx context.Context,
	caller *model.User,
	notifyEmail string,
) (string, error) {
	if caller.Role != model.RoleParent {
		return "", ErrForbidden
	}

	if caller.FamilyID == nil {
		return "", ErrNoFamily
	}

	if _, err := u.familyRepo.GetFamily(ctx, caller.FamilyID.Hex()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrFamilyNotFound
		}

		return "", err
	}

	token, err := newInviteToken()
	if err != nil {
		return "", err
	}

	if _, err := u.familyRepo.SetInviteToken(ctx, caller.FamilyID.Hex(), token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrFamilyNotFound
		}

		return "", err
	}

	if notifyEmail != "" && u.mailer != nil {
		if err := u.sendInviteMail(notifyEmail, token); err != nil {
			u.logger.Warn().Err(err).Msg("failed to send invite mail")
		}
	}

	return token, nil
}

// SignupStudent redeems an invite token. The decisive step is the atomic
// conditional update in FamilyRepository.LinkStudent: losing the race to a
// concurrent redemption discards the freshly created user and reports the
// invite as invalid.
func (u *accountLinkingUsecase) SignupStudent(
	ctx context.Context,
	inviteToken string,
	params SignupParams,
) (*model.User, error) {
	family, err := u.familyRepo.GetFamilyByInviteToken(ctx, inviteToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidInvite
		}

		return nil, err
	}

	if family.StudentID != nil {
		return nil, ErrAlreadyLinked
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	familyID := family.ID
	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: passwordHash,
		Role:         model.RoleStudent,
		Verified:     true,
		Profile:      params.Profile,
		FamilyID:     &familyID,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	if _, err := u.familyRepo.LinkStudent(ctx, family.ID.Hex(), inviteToken, user.ID); err != nil {
		u.discardUser(ctx, user.ID.Hex())

		if errors.Is(err, repository.ErrLinkConflict) {
			return nil, ErrInvalidInvite
		}

		return nil, err
	}

	return user, nil
}

func (u *accountLinkingUsecase) discardUser(ctx context.Context, id string) {
	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		u.logger.Error().Err(err).Str("user_id", id).Msg("failed to discard orphaned user")
	}
}

func (u *accountLinkingUsecase) discardFamily(ctx context.Context, id string) {
	if _, err := u.familyRepo.DeleteFamily(ctx, id); err != nil {
		u.logger.Error().Err(err).Str("family_id", id).Msg("failed to discard orphaned family")
	}
}

func (u *accountLinkingUsecase) sendInviteMail(to, token string) error {
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>Your parent invited you to join their family on Emma Advisor.</p>
		<p>Use the invite code below during signup to link your account:</p>

		<p><strong>%s</strong></p>

		<p>This code can be used exactly once and is replaced if a new invite is issued.</p>

		<p>Thank you,</p>
		<p>Emma Advisor Team</p>
	`, token)

	return u.mailer.SendHTML([]string{to}, "You are invited to Emma Advisor", htmlBody)
}

// newInviteToken returns a URL-safe token with 16 bytes of entropy.
func newInviteToken() (string, error) {
	bytes := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
