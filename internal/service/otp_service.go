package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/cache"
	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/constants"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"
)

// OTPService issues one-time login codes and authenticates with them.
type OTPService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	loginLogRepo repository.UserLoginLogRepository
	emailService *EmailService
	store        cache.OTPStore
}

// NewOTPService creates the OTP service.
func NewOTPService(cfg *config.Config, userRepo repository.UserRepository, loginLogRepo repository.UserLoginLogRepository, emailService *EmailService, store cache.OTPStore) *OTPService {
	return &OTPService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
		emailService: emailService,
		store:        store,
	}
}

// RequestOTP generates a code for a verified account and mails it. The
// code is stored only after the mail goes out, so a delivery failure
// leaves no pending code behind.
func (s *OTPService) RequestOTP(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingField
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if !user.Verified {
		return ErrEmailNotVerified
	}

	code, err := randomNumericCode(s.codeLength())
	if err != nil {
		return err
	}

	ttl := s.codeTTL()
	if err := s.emailService.SendOTP(normalized, code, int(ttl.Minutes())); err != nil {
		logger.Errorw("otp_mail_send_failed", "email", normalized, "error", err)
		return ErrDeliveryFailed
	}
	if err := s.store.Put(ctx, normalized, code, ttl); err != nil {
		return err
	}
	return nil
}

// LoginWithOTP authenticates with a pending code. A matching code is
// consumed before the account checks, so it cannot be replayed.
func (s *OTPService) LoginWithOTP(ctx context.Context, email, code string, meta LoginMeta) (*models.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(code) == "" {
		return nil, ErrMissingField
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Peek(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		s.recordLogin(0, normalized, constants.LoginLogFailReasonOTPNotGenerated, meta)
		return nil, ErrNoPendingOTP
	}
	if entry.Expired(time.Now()) {
		_ = s.store.Evict(ctx, normalized)
		s.recordLogin(0, normalized, constants.LoginLogFailReasonOTPExpired, meta)
		return nil, ErrOTPExpired
	}
	if entry.Code != strings.TrimSpace(code) {
		// Entry stays; the user may retry within the window.
		s.recordLogin(0, normalized, constants.LoginLogFailReasonOTPMismatch, meta)
		return nil, ErrOTPMismatch
	}

	if err := s.store.Evict(ctx, normalized); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.recordLogin(0, normalized, constants.LoginLogFailReasonUserNotFound, meta)
		return nil, ErrNotFound
	}
	if !user.Verified {
		s.recordLogin(user.ID, normalized, constants.LoginLogFailReasonEmailNotVerified, meta)
		return nil, ErrEmailNotVerified
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	s.recordLogin(user.ID, normalized, "", meta)

	return user, nil
}

func (s *OTPService) codeLength() int {
	if s.cfg.OTP.Length < 4 || s.cfg.OTP.Length > 10 {
		return 6
	}
	return s.cfg.OTP.Length
}

func (s *OTPService) codeTTL() time.Duration {
	if s.cfg.OTP.TTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(s.cfg.OTP.TTLSeconds) * time.Second
}

func (s *OTPService) recordLogin(userID uint, email, failReason string, meta LoginMeta) {
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
		Method:     constants.LoginMethodOTP,
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

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
