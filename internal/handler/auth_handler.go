package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/payload"
	"github.com/emmaworks/family-advisor-api/internal/usecase"
)

// AuthHandler serves the signup, login, and invite endpoints.
type AuthHandler struct {
	linkingUsecase usecase.AccountLinkingUsecase
	authUsecase    usecase.AuthUsecase
	validate       *validator.Validate
	logger         *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	linkingUsecase usecase.AccountLinkingUsecase,
	authUsecase usecase.AuthUsecase,
	validate *validator.Validate,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		linkingUsecase: linkingUsecase,
		authUsecase:    authUsecase,
		validate:       validate,
		logger:         logger,
	}
}

// SignupParent handles POST /auth/signup/parent.
func (h *AuthHandler) SignupParent(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.linkingUsecase.SignupParent(r.Context(), usecase.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, usecase.ErrAccountCreationFailed):
			h.logger.Error().Err(err).Msg("parent signup failed partway")
			respondError(w, http.StatusInternalServerError, "Failed to create account")
		default:
			h.logger.Error().Err(err).Msg("failed to create parent account")
			respondError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewUserResponse(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	token, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}

// GenerateInvite handles POST /auth/invite. The body is optional; a student
// email, when supplied, receives the invite code by mail.
func (h *AuthHandler) GenerateInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req payload.InviteRequest
	if !decodeOptional(w, r, h.validate, &req) {
		return
	}

	token, err := h.linkingUsecase.GenerateInvite(r.Context(), caller, req.StudentEmail)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrForbidden):
			respondError(w, http.StatusForbidden, "Only parents can generate invites")
		case errors.Is(err, usecase.ErrNoFamily):
			respondError(w, http.StatusBadRequest, "User is not associated with a family")
		case errors.Is(err, usecase.ErrFamilyNotFound):
			respondError(w, http.StatusNotFound, "Family not found")
		default:
			h.logger.Error().Err(err).Msg("failed to generate invite")
			respondError(w, http.StatusInternalServerError, "Failed to generate invite")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.InviteResponse{InviteToken: token})
}

// SignupStudent handles POST /auth/signup/student.
func (h *AuthHandler) SignupStudent(w http.ResponseWriter, r *http.Request) {
	var req payload.StudentSignupRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.linkingUsecase.SignupStudent(r.Context(), req.InviteToken, usecase.SignupParams{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInvite):
			respondError(w, http.StatusBadRequest, "Invalid invite token")
		case errors.Is(err, usecase.ErrAlreadyLinked):
			respondError(w, http.StatusBadRequest, "Family already has a student registered")
		case errors.Is(err, usecase.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already registered")
		default:
			h.logger.Error().Err(err).Msg("failed to create student account")
			respondError(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewUserResponse(user))
}
