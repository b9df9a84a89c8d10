package service

import "errors"

// Sentinel errors for the service layer. Handlers map these to response
// codes with errors.Is.
var (
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenExpired       = errors.New("verification link expired")
	ErrTokenInvalid       = errors.New("verification link invalid")
	ErrNoPendingOTP       = errors.New("otp not generated or expired")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPMismatch        = errors.New("incorrect otp")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrNotFound           = errors.New("record not found")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrFileTooLarge       = errors.New("file too large")
	ErrDeliveryFailed     = errors.New("email delivery failed")
	ErrRenderFailed       = errors.New("resume rendering failed")
	ErrChatUnavailable    = errors.New("chat service unavailable")
	ErrDataUnavailable    = errors.New("map data unavailable")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
