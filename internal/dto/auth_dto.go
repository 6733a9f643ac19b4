package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// RegisterRequest is the self-service signup. Accounts always start pending.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty"`
}

// CreateUserRequest is the admin-side variant; it may set role and status.
type CreateUserRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty"`
	Role           string `json:"role" validate:"required,oneof=employee admin manager"`
	ApprovalStatus string `json:"approval_status" validate:"omitempty,oneof=pending approved rejected"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name" validate:"omitempty"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" validate:"omitempty,oneof=employee admin manager"`
	Password string  `json:"password" validate:"omitempty,min=6"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Name           string     `json:"name"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	Role           string     `json:"role"`
	ApprovalStatus string     `json:"approval_status"`
	HireDate       *time.Time `json:"hire_date"`
	LastLogin      *time.Time `json:"last_login"`
	ProfilePicture *string    `json:"profile_picture"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MeetingInviteRequest struct {
	Emails  []string `json:"emails" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"required"`
	Body    string   `json:"body" validate:"required"`
}
