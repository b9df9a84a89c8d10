package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/cache"
	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/provider"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"
	"github.com/yuvasaathi/yuvasaathi-api/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAuthHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB, *token.Codec, *cache.MemoryOTPStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:auth_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserLoginLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.PublicURL = "http://api.test"
	cfg.App.FrontendURL = "http://frontend.test"
	cfg.OTP.Length = 6
	cfg.OTP.TTLSeconds = 300

	codec := token.NewCodec("auth-handler-test-secret", time.Hour)
	store := cache.NewMemoryOTPStore()
	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewUserLoginLogRepository(db)
	emailSvc := service.NewEmailService(&cfg.Email)

	container := &provider.Container{
		Config:           cfg,
		UserRepo:         userRepo,
		UserLoginLogRepo: logRepo,
		OTPStore:         store,
		TokenCodec:       codec,
		EmailService:     emailSvc,
		AccountService:   service.NewAccountService(cfg, userRepo, logRepo, emailSvc, codec),
		OTPService:       service.NewOTPService(cfg, userRepo, logRepo, emailSvc, store),
	}
	handler := New(container)

	r := gin.New()
	r.POST("/api/register", handler.Register)
	r.GET("/verify-email/:token", handler.VerifyEmail)
	r.POST("/api/generate-otp", handler.GenerateOTP)
	r.POST("/api/login", handler.LoginWithOTP)
	r.POST("/api/login-password", handler.LoginWithPassword)
	return r, db, codec, store
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp envelope
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal envelope failed: %v (body %s)", err, w.Body.String())
		}
	}
	return w, resp
}

func seedVerifiedHandlerUser(t *testing.T, db *gorm.DB, email string) {
	t.Helper()
	user := models.User{
		FirstName:       "Ravi",
		Surname:         "Singh",
		Email:           email,
		Mobile:          "9800012345",
		AadhaarNumber:   "123412341234",
		PANNumber:       "ABCDE1234F",
		PasswordHash:    "hash",
		Education:       "B.Sc",
		CurrentLocation: "Patna",
		Verified:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func TestRegisterRejectsIncompleteForm(t *testing.T) {
	r, _, _, _ := setupAuthHandlerTest(t)

	_, resp := postJSON(t, r, "/api/register", `{"email":"only@example.com"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	if resp.Msg != "All fields are required" {
		t.Fatalf("msg want 'All fields are required' got %q", resp.Msg)
	}
}

func TestVerifyEmailRedirects(t *testing.T) {
	r, db, codec, _ := setupAuthHandlerTest(t)
	seedVerifiedHandlerUser(t, db, "redirect@example.com")
	db.Model(&models.User{}).Where("email = ?", "redirect@example.com").Update("verified", false)

	signed, err := codec.Issue("redirect@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/verify-email/"+signed, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status want 302 got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if location != "http://frontend.test/login?verified=true" {
		t.Fatalf("location want http://frontend.test/login?verified=true got %s", location)
	}

	var stored models.User
	if err := db.Where("email = ?", "redirect@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if !stored.Verified {
		t.Fatalf("user should be verified after redeeming the link")
	}
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	r, _, _, _ := setupAuthHandlerTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/verify-email/garbage", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	if resp.StatusCode != 400 || resp.Msg != "Invalid verification link" {
		t.Fatalf("unexpected envelope: %d %q", resp.StatusCode, resp.Msg)
	}
}

func TestGenerateOTPUnknownUser(t *testing.T) {
	r, _, _, _ := setupAuthHandlerTest(t)

	_, resp := postJSON(t, r, "/api/generate-otp", `{"email":"ghost@example.com"}`)
	if resp.StatusCode != 404 || resp.Msg != "User not found" {
		t.Fatalf("unexpected envelope: %d %q", resp.StatusCode, resp.Msg)
	}
}

func TestLoginWithOTPEnvelopes(t *testing.T) {
	r, db, _, store := setupAuthHandlerTest(t)
	seedVerifiedHandlerUser(t, db, "otp@example.com")

	_, resp := postJSON(t, r, "/api/login", `{"email":"otp@example.com","otp":"123456"}`)
	if resp.StatusCode != 400 || resp.Msg != "OTP not generated or expired" {
		t.Fatalf("no pending code: %d %q", resp.StatusCode, resp.Msg)
	}

	if err := store.Put(context.Background(), "otp@example.com", "123456", 300*time.Second); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	_, resp = postJSON(t, r, "/api/login", `{"email":"otp@example.com","otp":"999999"}`)
	if resp.StatusCode != 400 || resp.Msg != "Incorrect OTP" {
		t.Fatalf("mismatch: %d %q", resp.StatusCode, resp.Msg)
	}

	_, resp = postJSON(t, r, "/api/login", `{"email":"otp@example.com","otp":"123456"}`)
	if resp.StatusCode != 0 || resp.Msg != "Login successful" {
		t.Fatalf("success: %d %q", resp.StatusCode, resp.Msg)
	}

	var data struct {
		User struct {
			Email    string `json:"email"`
			Verified bool   `json:"verified"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal data failed: %v", err)
	}
	if data.User.Email != "otp@example.com" || !data.User.Verified {
		t.Fatalf("unexpected user summary: %+v", data.User)
	}
}

func TestLoginWithPasswordEnvelopes(t *testing.T) {
	r, _, _, _ := setupAuthHandlerTest(t)

	_, resp := postJSON(t, r, "/api/login-password", `{"email":"otp@example.com"}`)
	if resp.StatusCode != 400 || resp.Msg != "Email and password are required" {
		t.Fatalf("missing password: %d %q", resp.StatusCode, resp.Msg)
	}

	_, resp = postJSON(t, r, "/api/login-password", `{"email":"ghost@example.com","password":"x"}`)
	if resp.StatusCode != 404 || resp.Msg != "User not found" {
		t.Fatalf("unknown user: %d %q", resp.StatusCode, resp.Msg)
	}
}
