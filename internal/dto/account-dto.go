package dto

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	Birthday string `json:"birthday,omitempty"` // YYYY-MM-DD, optional
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required"`
}

type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ProfileResponse is the account view exposed over the API: no id,
// password, status or OTP state.
type ProfileResponse struct {
	Email    string     `json:"email"`
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Phone    string     `json:"phone"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// AccessClaims is the decoded access-token payload the middleware puts
// into the request context.
type AccessClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// RefreshClaims is the narrower refresh-token payload.
type RefreshClaims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// OtpMailEvent is the payload published for the mail worker.
type OtpMailEvent struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Otp       string `json:"otp"`
}
