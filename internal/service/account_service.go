package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/constants"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"
	"github.com/yuvasaathi/yuvasaathi-api/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration, email verification and password
// login.
type AccountService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	loginLogRepo repository.UserLoginLogRepository
	emailService *EmailService
	tokenCodec   *token.Codec
}

// NewAccountService creates the account service.
func NewAccountService(cfg *config.Config, userRepo repository.UserRepository, loginLogRepo repository.UserLoginLogRepository, emailService *EmailService, tokenCodec *token.Codec) *AccountService {
	return &AccountService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
		emailService: emailService,
		tokenCodec:   tokenCodec,
	}
}

// RegisterInput carries the registration form. PrevEmploymentExchange is
// a pointer so an omitted answer is distinguishable from "no".
type RegisterInput struct {
	FirstName              string
	MiddleName             string
	Surname                string
	Email                  string
	Mobile                 string
	AadhaarNumber          string
	PANNumber              string
	Password               string
	Education              string
	CurrentLocation        string
	EmploymentHistory      string
	Certifications         string
	PrevEmploymentExchange *bool
}

func (in *RegisterInput) validate() error {
	required := []string{
		in.FirstName,
		in.Surname,
		in.Email,
		in.Mobile,
		in.AadhaarNumber,
		in.PANNumber,
		in.Password,
		in.Education,
		in.CurrentLocation,
		in.EmploymentHistory,
		in.Certifications,
	}
	for _, value := range required {
		if strings.TrimSpace(value) == "" {
			return ErrMissingField
		}
	}
	if in.PrevEmploymentExchange == nil {
		return ErrMissingField
	}
	return nil
}

// LoginMeta carries request context recorded in the login log.
type LoginMeta struct {
	ClientIP  string
	RequestID string
}

// Register creates an unverified user and mails the confirmation link.
// The row persists even when the mail fails; the caller sees
// ErrDeliveryFailed in that case.
func (s *AccountService) Register(input RegisterInput) (*models.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		FirstName:              strings.TrimSpace(input.FirstName),
		MiddleName:             strings.TrimSpace(input.MiddleName),
		Surname:                strings.TrimSpace(input.Surname),
		Email:                  normalized,
		Mobile:                 strings.TrimSpace(input.Mobile),
		AadhaarNumber:          strings.TrimSpace(input.AadhaarNumber),
		PANNumber:              strings.TrimSpace(input.PANNumber),
		PasswordHash:           string(hashedPassword),
		Education:              strings.TrimSpace(input.Education),
		CurrentLocation:        strings.TrimSpace(input.CurrentLocation),
		EmploymentHistory:      input.EmploymentHistory,
		Certifications:         input.Certifications,
		PrevEmploymentExchange: *input.PrevEmploymentExchange,
		Verified:               false,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	signed, err := s.tokenCodec.Issue(normalized)
	if err != nil {
		logger.Errorw("verification_token_issue_failed", "email", normalized, "error", err)
		return user, ErrDeliveryFailed
	}
	link := fmt.Sprintf("%s/verify-email/%s", strings.TrimRight(s.cfg.App.PublicURL, "/"), signed)
	if err := s.emailService.SendVerificationLink(normalized, link); err != nil {
		logger.Errorw("verification_mail_send_failed", "email", normalized, "error", err)
		return user, ErrDeliveryFailed
	}

	return user, nil
}

// VerifyEmail redeems a verification token and returns the frontend
// redirect URL. Re-verification of an already verified account succeeds.
func (s *AccountService) VerifyEmail(tokenString string) (string, error) {
	email, err := s.tokenCodec.Verify(tokenString)
	if err != nil {
		switch err {
		case token.ErrExpired:
			return "", ErrTokenExpired
		default:
			return "", ErrTokenInvalid
		}
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}

	if !user.Verified {
		if err := s.userRepo.MarkVerified(user.ID); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s/login?verified=true", strings.TrimRight(s.cfg.App.FrontendURL, "/")), nil
}

// LoginWithPassword authenticates a verified user by password.
func (s *AccountService) LoginWithPassword(email, password string, meta LoginMeta) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingField
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.recordLogin(0, normalized, constants.LoginMethodPassword, constants.LoginLogFailReasonUserNotFound, meta)
		return nil, ErrNotFound
	}
	if !user.Verified {
		s.recordLogin(user.ID, normalized, constants.LoginMethodPassword, constants.LoginLogFailReasonEmailNotVerified, meta)
		return nil, ErrEmailNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLogin(user.ID, normalized, constants.LoginMethodPassword, constants.LoginLogFailReasonInvalidCredentials, meta)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	s.recordLogin(user.ID, normalized, constants.LoginMethodPassword, "", meta)

	return user, nil
}

// GetUserByID fetches a user, ErrNotFound when absent.
func (s *AccountService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// recordLogin writes a login log entry. An empty failReason means
// success. Log failures never fail the login itself.
func (s *AccountService) recordLogin(userID uint, email, method, failReason string, meta LoginMeta) {
	if s.loginLogRepo == nil {
		return
	}
	status := constants.LoginLogStatusSuccess
	if failReason != "" {
		status = constants.LoginLogStatusFailed
	}
	entry := &models.UserLoginLog{
		UserID:     userID,
		Email:      email,
		Method:     method,
		Status:     status,
		FailReason: failReason,
		ClientIP:   meta.ClientIP,
		RequestID:  meta.RequestID,
		CreatedAt:  time.Now(),
	}
	if err := s.loginLogRepo.Create(entry); err != nil {
		logger.Warnw("login_log_write_failed", "email", email, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
