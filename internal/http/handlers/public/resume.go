package public

import (
	"errors"
	"strconv"

	"github.com/yuvasaathi/yuvasaathi-api/internal/http/response"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

func parseUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("user_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid user id", nil)
		return 0, false
	}
	return uint(id), true
}

// UploadResume stores an uploaded resume file for the user.
func (h *Handler) UploadResume(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		respondError(c, response.CodeBadRequest, "No resume file provided", nil)
		return
	}

	path, err := h.ResumeService.Upload(userID, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrUnsupportedFormat):
			respondError(c, response.CodeBadRequest, "Only .pdf and .docx files are allowed", nil)
		case errors.Is(err, service.ErrFileTooLarge):
			respondError(c, response.CodeBadRequest, "Resume file too large", nil)
		default:
			respondError(c, response.CodeInternal, "Resume upload failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Resume uploaded successfully", gin.H{"path": path})
}

// GenerateResumeRequest is the resume builder form. History and
// certifications must be present but may be blank.
type GenerateResumeRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	MiddleName      string `json:"middle_name"`
	Surname         string `json:"surname" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Mobile          string `json:"mobile" binding:"required"`
	Education       string `json:"education" binding:"required"`
	CurrentLocation string `json:"current_location" binding:"required"`

	EmploymentHistory *string `json:"employment_history" binding:"required"`
	Certifications    *string `json:"certifications" binding:"required"`
}

// GenerateResume renders a PDF resume from the submitted form.
func (h *Handler) GenerateResume(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "All fields are required", nil)
		return
	}

	path, err := h.ResumeService.Generate(userID, service.GenerateInput{
		FirstName:         req.FirstName,
		MiddleName:        req.MiddleName,
		Surname:           req.Surname,
		Email:             req.Email,
		Mobile:            req.Mobile,
		Education:         req.Education,
		CurrentLocation:   req.CurrentLocation,
		EmploymentHistory: req.EmploymentHistory,
		Certifications:    req.Certifications,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "All fields are required", nil)
		case errors.Is(err, service.ErrRenderFailed):
			respondError(c, response.CodeInternal, "Resume generation failed", err)
		default:
			respondError(c, response.CodeInternal, "Resume generation failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Resume generated successfully", gin.H{"path": path})
}

// DownloadResume streams the generated resume as a PDF attachment.
func (h *Handler) DownloadResume(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	path, filename, err := h.ResumeService.Download(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Resume not found", nil)
		default:
			respondError(c, response.CodeInternal, "Resume download failed", err)
		}
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, filename)
}
