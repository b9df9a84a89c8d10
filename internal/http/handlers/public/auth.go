package public

import (
	"errors"
	"net/http"

	"github.com/yuvasaathi/yuvasaathi-api/internal/http/response"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FirstName              string `json:"first_name" binding:"required"`
	MiddleName             string `json:"middle_name"`
	Surname                string `json:"surname" binding:"required"`
	Email                  string `json:"email" binding:"required"`
	Mobile                 string `json:"mobile" binding:"required"`
	AadhaarNumber          string `json:"aadhaar_number" binding:"required"`
	PANNumber              string `json:"pan_number" binding:"required"`
	Password               string `json:"password" binding:"required"`
	Education              string `json:"education" binding:"required"`
	CurrentLocation        string `json:"current_location" binding:"required"`
	EmploymentHistory      string `json:"employment_history" binding:"required"`
	Certifications         string `json:"certifications" binding:"required"`
	PrevEmploymentExchange *bool  `json:"prev_employment_exchange" binding:"required"`
}

// Register creates an account and mails the verification link.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "All fields are required", nil)
		return
	}

	user, err := h.AccountService.Register(service.RegisterInput{
		FirstName:              req.FirstName,
		MiddleName:             req.MiddleName,
		Surname:                req.Surname,
		Email:                  req.Email,
		Mobile:                 req.Mobile,
		AadhaarNumber:          req.AadhaarNumber,
		PANNumber:              req.PANNumber,
		Password:               req.Password,
		Education:              req.Education,
		CurrentLocation:        req.CurrentLocation,
		EmploymentHistory:      req.EmploymentHistory,
		Certifications:         req.Certifications,
		PrevEmploymentExchange: req.PrevEmploymentExchange,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "All fields are required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "Email already registered", nil)
		case errors.Is(err, service.ErrDeliveryFailed):
			respondError(c, response.CodeInternal, "Failed to send verification email", err)
		default:
			respondError(c, response.CodeInternal, "Registration failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "User registered successfully. Please verify your email.", gin.H{
		"user_id": user.ID,
	})
}

// VerifyEmail redeems a mailed verification token and redirects to the
// frontend login page.
func (h *Handler) VerifyEmail(c *gin.Context) {
	redirectURL, err := h.AccountService.VerifyEmail(c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			respondError(c, response.CodeBadRequest, "The verification link has expired", nil)
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeBadRequest, "Invalid verification link", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		default:
			respondError(c, response.CodeInternal, "Verification failed", err)
		}
		return
	}

	c.Redirect(http.StatusFound, redirectURL)
}

// GenerateOTPRequest asks for a login code.
type GenerateOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

// GenerateOTP mails a one-time login code to a verified account.
func (h *Handler) GenerateOTP(c *gin.Context) {
	var req GenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Email is required", nil)
		return
	}

	if err := h.OTPService.RequestOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "Email is required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeForbidden, "Email not verified", nil)
		case errors.Is(err, service.ErrDeliveryFailed):
			respondError(c, response.CodeInternal, "Failed to send OTP email", err)
		default:
			respondError(c, response.CodeInternal, "OTP generation failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "OTP sent to your email", gin.H{"sent": true})
}

// OTPLoginRequest is the OTP login form.
type OTPLoginRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// LoginWithOTP authenticates with a previously mailed code.
func (h *Handler) LoginWithOTP(c *gin.Context) {
	var req OTPLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Email and OTP are required", nil)
		return
	}

	user, err := h.OTPService.LoginWithOTP(c.Request.Context(), req.Email, req.OTP, loginMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "Email and OTP are required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrNoPendingOTP):
			respondError(c, response.CodeBadRequest, "OTP not generated or expired", nil)
		case errors.Is(err, service.ErrOTPExpired):
			respondError(c, response.CodeBadRequest, "OTP has expired, request a new one", nil)
		case errors.Is(err, service.ErrOTPMismatch):
			respondError(c, response.CodeBadRequest, "Incorrect OTP", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeForbidden, "Email not verified", nil)
		default:
			respondError(c, response.CodeInternal, "Login failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Login successful", gin.H{"user": userSummary(user)})
}

// PasswordLoginRequest is the password login form.
type PasswordLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginWithPassword authenticates a verified account by password.
func (h *Handler) LoginWithPassword(c *gin.Context) {
	var req PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Email and password are required", nil)
		return
	}

	user, err := h.AccountService.LoginWithPassword(req.Email, req.Password, loginMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "Email and password are required", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(c, response.CodeForbidden, "Email not verified", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "Invalid credentials", nil)
		default:
			respondError(c, response.CodeInternal, "Login failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Login successful", gin.H{"user": userSummary(user)})
}

func userSummary(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"first_name":    user.FirstName,
		"surname":       user.Surname,
		"email":         user.Email,
		"verified":      user.Verified,
		"last_login_at": user.LastLoginAt,
	}
}
