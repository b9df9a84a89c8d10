package constants

// Login log status values.
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// Login methods.
const (
	LoginMethodPassword = "password"
	LoginMethodOTP      = "otp"
)

// Login log fail reasons.
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonEmailNotVerified   = "email_not_verified"
	LoginLogFailReasonUserNotFound       = "user_not_found"
	LoginLogFailReasonOTPNotGenerated    = "otp_not_generated"
	LoginLogFailReasonOTPExpired         = "otp_expired"
	LoginLogFailReasonOTPMismatch        = "otp_mismatch"
	LoginLogFailReasonInternalError      = "internal_error"
)

// Skills summary labels, in chart order.
var SkillsChartLabels = []string{"IT Jobs", "Non-IT Jobs", "Test Results"}

// Cache defaults.
const (
	RedisPrefixDefault = "ys"
)
