package http

import "time"

// ErrorResponse is the envelope carried by every failure.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Invalid email or password"`
	Code    string `json:"code" example:"INVALID_CREDENTIALS"`
}

// MessageResponse is a success envelope with a human readable message.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"If an account exists, a reset link has been sent."`
}

// AuthUser is the public projection of an account.
type AuthUser struct {
	ID        string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name      string    `json:"name" example:"Ada Lovelace"`
	Email     string    `json:"email" example:"ada@example.com"`
	Role      string    `json:"role" example:"viewer"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success   bool      `json:"success" example:"true"`
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser  `json:"user"`
}

// TokenValidityResponse reports whether a reset token is still usable.
type TokenValidityResponse struct {
	Success bool   `json:"success" example:"true"`
	Valid   bool   `json:"valid" example:"true"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// PageMeta describes a paginated listing.
type PageMeta struct {
	Total  int `json:"total" example:"42"`
	Limit  int `json:"limit" example:"20"`
	Offset int `json:"offset" example:"0"`
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// PasswordResetRequest starts the reset flow for an email address.
type PasswordResetRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

// PasswordResetConfirmRequest carries the replacement password. The token
// travels in the path.
type PasswordResetConfirmRequest struct {
	Password string `json:"password" example:"NewPass!45"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"OldPass!23"`
	NewPassword     string `json:"new_password" example:"NewPass!45"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" example:"editor"`
}

// RecommendationRequest replaces every field of a recommendation. Leaving
// approved out keeps the current moderation state.
type RecommendationRequest struct {
	Name           string `json:"name" example:"Grace Hopper"`
	Position       string `json:"position" example:"Rear Admiral"`
	Company        string `json:"company" example:"US Navy"`
	Recommendation string `json:"recommendation" example:"A pleasure to work with."`
	Approved       *bool  `json:"approved,omitempty" example:"true"`
}

// BlogRequest is the body of blog create and update calls.
type BlogRequest struct {
	Title       string `json:"title" example:"Shipping a portfolio"`
	Content     string `json:"content" example:"# Hello"`
	ContentType string `json:"content_type" example:"markdown"`
}
