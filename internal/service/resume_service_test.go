package service

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/models"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupResumeServiceTest(t *testing.T) (*ResumeService, *gorm.DB, *config.Config) {
	t.Helper()
	dsn := fmt.Sprintf("file:resume_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserLoginLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Resume.UploadDir = filepath.Join(t.TempDir(), "uploads")
	cfg.Resume.GeneratedDir = filepath.Join(t.TempDir(), "generated")
	cfg.Resume.MaxSize = 5 << 20
	cfg.Resume.AllowedExtensions = []string{".pdf", ".docx"}

	svc := NewResumeService(cfg, repository.NewUserRepository(db))
	return svc, db, cfg
}

func seedResumeUser(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	user := models.User{
		FirstName:       "Ravi",
		Surname:         "Singh",
		Email:           "resume@example.com",
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
	return user.ID
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("resume")
	if err != nil {
		t.Fatalf("parse form file failed: %v", err)
	}
	return header
}

func TestUploadResume(t *testing.T) {
	svc, db, cfg := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	path, err := svc.Upload(userID, makeFileHeader(t, "my resume.pdf", "%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	wantName := fmt.Sprintf("user_%d_my resume.pdf", userID)
	if filepath.Base(path) != wantName {
		t.Fatalf("stored name want %s got %s", wantName, filepath.Base(path))
	}
	if !strings.HasPrefix(path, cfg.Resume.UploadDir) {
		t.Fatalf("file should land in the upload dir, got %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file failed: %v", err)
	}
	if string(raw) != "%PDF-1.4 fake" {
		t.Fatalf("stored content mismatch")
	}

	var stored models.User
	if err := db.First(&stored, userID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.ResumePath != path {
		t.Fatalf("resume path want %s got %s", path, stored.ResumePath)
	}
}

func TestUploadResumeRejectsBadInput(t *testing.T) {
	svc, db, cfg := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	if _, err := svc.Upload(userID, makeFileHeader(t, "resume.exe", "MZ")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf(".exe want ErrUnsupportedFormat got %v", err)
	}
	if _, err := svc.Upload(userID, makeFileHeader(t, "resume", "data")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("extensionless file want ErrUnsupportedFormat got %v", err)
	}
	if _, err := svc.Upload(userID+100, makeFileHeader(t, "resume.pdf", "data")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user want ErrNotFound got %v", err)
	}

	cfg.Resume.MaxSize = 4
	if _, err := svc.Upload(userID, makeFileHeader(t, "resume.pdf", "too big")); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("oversized file want ErrFileTooLarge got %v", err)
	}
}

func generateInputFixture() GenerateInput {
	history := "Junior Developer at a local firm (2022-2024)\nIntern (2021)"
	certs := "NIELIT CCC, Tally ERP 9"
	return GenerateInput{
		FirstName:         "Ravi",
		Surname:           "Singh",
		Email:             "resume@example.com",
		Mobile:            "9800012345",
		Education:         "B.Sc Computer Science",
		CurrentLocation:   "Patna",
		EmploymentHistory: &history,
		Certifications:    &certs,
	}
}

func TestGenerateResume(t *testing.T) {
	svc, db, cfg := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	path, err := svc.Generate(userID, generateInputFixture())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, fmt.Sprintf("resume_%d_", userID)) || !strings.HasSuffix(base, ".pdf") {
		t.Fatalf("generated name should be resume_<id>_<unix>.pdf, got %s", base)
	}
	if !strings.HasPrefix(path, cfg.Resume.GeneratedDir) {
		t.Fatalf("file should land in the generated dir, got %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat generated file failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("generated PDF should not be empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated file failed: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("output should be a PDF document")
	}

	var stored models.User
	if err := db.First(&stored, userID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if stored.GeneratedResumePath != path {
		t.Fatalf("generated path want %s got %s", path, stored.GeneratedResumePath)
	}
}

// pdfTextContent inflates the document's content streams so tests can
// assert on the rendered text. Core-font text lands as literal
// parenthesized strings.
func pdfTextContent(t *testing.T, raw []byte) string {
	t.Helper()
	var out bytes.Buffer
	rest := raw
	for {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream"):]
		rest = bytes.TrimPrefix(rest, []byte("\r"))
		rest = bytes.TrimPrefix(rest, []byte("\n"))
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			break
		}
		chunk := rest[:end]
		if reader, err := zlib.NewReader(bytes.NewReader(chunk)); err == nil {
			if decoded, err := io.ReadAll(reader); err == nil {
				out.Write(decoded)
			}
			reader.Close()
		} else {
			out.Write(chunk)
		}
		rest = rest[end+len("endstream"):]
	}
	return out.String()
}

func TestGenerateResumeContent(t *testing.T) {
	svc, db, _ := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	input := generateInputFixture()
	history := "Job A\nJob B"
	certs := " X , Y "
	input.EmploymentHistory = &history
	input.Certifications = &certs

	path, err := svc.Generate(userID, input)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated file failed: %v", err)
	}
	text := pdfTextContent(t, raw)

	for _, want := range []string{
		"(Ravi Singh)",
		"(resume@example.com | 9800012345 | Patna)",
		"(Education)",
		"(Employment History)",
		"(Certifications)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered text missing %s", want)
		}
	}

	// Each newline-delimited history entry is its own paragraph.
	if !strings.Contains(text, "(Job A)") || !strings.Contains(text, "(Job B)") {
		t.Fatalf("history entries should render as separate paragraphs")
	}
	// Comma-delimited certifications become trimmed bullets.
	if !strings.Contains(text, "(- X)") || !strings.Contains(text, "(- Y)") {
		t.Fatalf("certifications should render as trimmed bullets")
	}
}

func TestGenerateResumeBlankSections(t *testing.T) {
	svc, db, _ := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	input := generateInputFixture()
	blank := ""
	input.EmploymentHistory = &blank
	input.Certifications = &blank
	if _, err := svc.Generate(userID, input); err != nil {
		t.Fatalf("blank sections should still render: %v", err)
	}
}

func TestGenerateResumeValidation(t *testing.T) {
	svc, db, _ := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	input := generateInputFixture()
	input.EmploymentHistory = nil
	if _, err := svc.Generate(userID, input); !errors.Is(err, ErrMissingField) {
		t.Fatalf("missing history key want ErrMissingField got %v", err)
	}

	input = generateInputFixture()
	input.Email = " "
	if _, err := svc.Generate(userID, input); !errors.Is(err, ErrMissingField) {
		t.Fatalf("blank email want ErrMissingField got %v", err)
	}

	if _, err := svc.Generate(userID+100, generateInputFixture()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user want ErrNotFound got %v", err)
	}
}

func TestDownloadResume(t *testing.T) {
	svc, db, _ := setupResumeServiceTest(t)
	userID := seedResumeUser(t, db)

	if _, _, err := svc.Download(userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no generated resume want ErrNotFound got %v", err)
	}

	path, err := svc.Generate(userID, generateInputFixture())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	gotPath, filename, err := svc.Download(userID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if gotPath != path || filename != filepath.Base(path) {
		t.Fatalf("download resolution mismatch: %s / %s", gotPath, filename)
	}

	// A record pointing at a deleted file behaves like no resume at all.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove file failed: %v", err)
	}
	if _, _, err := svc.Download(userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted file want ErrNotFound got %v", err)
	}
}

func TestFullNameSkipsBlankMiddle(t *testing.T) {
	input := generateInputFixture()
	if got := input.fullName(); got != "Ravi Singh" {
		t.Fatalf("full name want Ravi Singh got %s", got)
	}
	input.MiddleName = "Kumar"
	if got := input.fullName(); got != "Ravi Kumar Singh" {
		t.Fatalf("full name want Ravi Kumar Singh got %s", got)
	}
}
