package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionMissing     = errors.New("no active session")
	ErrSubmitInFlight     = errors.New("a submit is already in flight")
)

// Local validation errors; these never reach the network.
var (
	ErrMissingRequiredField = errors.New("required field missing")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPhoneIncomplete      = errors.New("phone number is incomplete")
	ErrCodeIncomplete       = errors.New("verification code must be 6 digits")
	ErrDestinationMissing   = errors.New("verification destination missing")
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrCooldownActive = errors.New("resend cooldown active")
)

// Upload errors
var (
	ErrUploadTooLarge        = errors.New("image exceeds the 5 MB limit")
	ErrUploadUnsupportedType = errors.New("unsupported image type; use jpeg, jpg, png, gif or webp")
)
