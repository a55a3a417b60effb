// Package payload defines the HTTP request and response shapes.
package payload

import (
	"github.com/emmaworks/family-advisor-api/internal/model"
)

type SignupRequest struct {
	Email    string         `json:"email"    validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Profile  map[string]any `json:"profile"`
}

type StudentSignupRequest struct {
	Email       string         `json:"email"        validate:"required,email"`
	Password    string         `json:"password"     validate:"required,min=8"`
	InviteToken string         `json:"invite_token" validate:"required"`
	Profile     map[string]any `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type InviteRequest struct {
	StudentEmail string `json:"student_email" validate:"omitempty,email"`
}

type InviteResponse struct {
	InviteToken string `json:"invite_token"`
}

// UserResponse is the public view of a user. The credential hash never leaves
// the service.
type UserResponse struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Role     string         `json:"role"`
	Verified bool           `json:"is_verified"`
	FamilyID string         `json:"family_id,omitempty"`
	Profile  map[string]any `json:"profile"`
}

// NewUserResponse maps a user model to its public view.
func NewUserResponse(user *model.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Role:     string(user.Role),
		Verified: user.Verified,
		Profile:  user.Profile,
	}
	if resp.Profile == nil {
		resp.Profile = map[string]any{}
	}
	if user.FamilyID != nil {
		resp.FamilyID = user.FamilyID.Hex()
	}

	return resp
}
