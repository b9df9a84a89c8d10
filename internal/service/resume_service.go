package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
	"github.com/yuvasaathi/yuvasaathi-api/internal/repository"

	"github.com/go-pdf/fpdf"
)

// ResumeService handles resume upload, generation and download.
type ResumeService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewResumeService creates the resume service.
func NewResumeService(cfg *config.Config, userRepo repository.UserRepository) *ResumeService {
	return &ResumeService{cfg: cfg, userRepo: userRepo}
}

// Upload stores an uploaded resume for the user and records its path.
func (s *ResumeService) Upload(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}

	if s.cfg.Resume.MaxSize > 0 && file.Size > s.cfg.Resume.MaxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" || !isAllowedExtension(ext, s.cfg.Resume.AllowedExtensions) {
		return "", ErrUnsupportedFormat
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Strip any client-supplied directory components.
	baseName := filepath.Base(file.Filename)
	filename := fmt.Sprintf("user_%d_%s", userID, baseName)
	savePath := filepath.Join(s.cfg.Resume.UploadDir, filename)

	if err := os.MkdirAll(s.cfg.Resume.UploadDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateResumePath(userID, savePath); err != nil {
		return "", err
	}
	return savePath, nil
}

// GenerateInput carries the resume form. EmploymentHistory and
// Certifications are pointers: the keys must be present, but blank
// values just omit their sections.
type GenerateInput struct {
	FirstName       string
	MiddleName      string
	Surname         string
	Email           string
	Mobile          string
	Education       string
	CurrentLocation string

	EmploymentHistory *string
	Certifications    *string
}

func (in *GenerateInput) validate() error {
	required := []string{
		in.FirstName,
		in.Surname,
		in.Email,
		in.Mobile,
		in.Education,
		in.CurrentLocation,
	}
	for _, value := range required {
		if strings.TrimSpace(value) == "" {
			return ErrMissingField
		}
	}
	if in.EmploymentHistory == nil || in.Certifications == nil {
		return ErrMissingField
	}
	return nil
}

func (in *GenerateInput) fullName() string {
	parts := []string{in.FirstName, in.MiddleName, in.Surname}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Generate renders a one-page resume PDF and records its path on the
// user. A database failure removes the fresh file so no orphan remains.
func (s *ResumeService) Generate(userID uint, input GenerateInput) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}
	if err := input.validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.Resume.GeneratedDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("resume_%d_%d.pdf", userID, time.Now().Unix())
	savePath := filepath.Join(s.cfg.Resume.GeneratedDir, filename)

	if err := renderResumePDF(savePath, input); err != nil {
		logger.Errorw("resume_render_failed", "user_id", userID, "error", err)
		_ = os.Remove(savePath)
		return "", ErrRenderFailed
	}

	if err := s.userRepo.UpdateGeneratedResumePath(userID, savePath); err != nil {
		_ = os.Remove(savePath)
		return "", err
	}
	return savePath, nil
}

// Download resolves the generated resume for streaming. ErrNotFound
// covers both a missing record and a missing file on disk.
func (s *ResumeService) Download(userID uint) (path, filename string, err error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrNotFound
	}
	if strings.TrimSpace(user.GeneratedResumePath) == "" {
		return "", "", ErrNotFound
	}
	if _, err := os.Stat(user.GeneratedResumePath); err != nil {
		return "", "", ErrNotFound
	}
	return user.GeneratedResumePath, filepath.Base(user.GeneratedResumePath), nil
}

func renderResumePDF(path string, input GenerateInput) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Heading: full name centered.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, input.fullName(), "", 1, "C", false, 0, "")

	// Contact line under the heading.
	contact := fmt.Sprintf("%s | %s | %s",
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Mobile),
		strings.TrimSpace(input.CurrentLocation),
	)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, contact, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeSectionHeading(pdf, "Education")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, strings.TrimSpace(input.Education), "", "L", false)
	pdf.Ln(4)

	if history := strings.TrimSpace(*input.EmploymentHistory); history != "" {
		writeSectionHeading(pdf, "Employment History")
		pdf.SetFont("Helvetica", "", 11)
		for _, entry := range strings.Split(history, "\n") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			pdf.MultiCell(0, 6, entry, "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	if certifications := strings.TrimSpace(*input.Certifications); certifications != "" {
		writeSectionHeading(pdf, "Certifications")
		pdf.SetFont("Helvetica", "", 11)
		for _, entry := range strings.Split(certifications, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			pdf.MultiCell(0, 6, "- "+entry, "", "L", false)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// writeSectionHeading draws a bold section title with a rule under it.
func writeSectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	x, y := pdf.GetX(), pdf.GetY()
	pageWidth, _ := pdf.GetPageSize()
	_, _, rightMargin, _ := pdf.GetMargins()
	pdf.Line(x, y, pageWidth-rightMargin, y)
	pdf.Ln(3)
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
