package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/emmaworks/family-advisor-api/internal/config"
	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
	"github.com/emmaworks/family-advisor-api/internal/security"
	"github.com/emmaworks/family-advisor-api/shared/auth"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*Token, error)
	ResolveCurrentUser(ctx context.Context, tokenStr string) (*model.User, error)
}

// Token is a signed bearer credential returned on successful login.
type Token struct {
	AccessToken string
	TokenType   string
}

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
	jwtAuth  auth.JWTAuthenticator
	tokenCfg config.TokenConfig
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher security.Hasher,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		jwtAuth:  jwtAuth,
		tokenCfg: tokenCfg,
	}
}

// Login verifies the credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := u.hasher.Verify(password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	claims := u.jwtAuth.NewAccessClaims(user.Email, string(user.Role), user.ID.Hex(), u.tokenCfg.ExpiresIn)
	accessToken, err := u.jwtAuth.GenerateToken(claims, u.tokenCfg.Secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ResolveCurrentUser verifies a bearer token and re-fetches the user by the
// embedded id. Stale claims are never trusted beyond identity.
func (u *authUsecase) ResolveCurrentUser(ctx context.Context, tokenStr string) (*model.User, error) {
	claims := &auth.AccessClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(tokenStr, u.tokenCfg.Secret, claims); err != nil {
		return nil, ErrUnauthorized
	}

	user, err := u.userRepo.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	return user, nil
}
