package public

import (
	"errors"
	"strconv"

	"github.com/yuvasaathi/yuvasaathi-api/internal/http/handlers/shared"
	"github.com/yuvasaathi/yuvasaathi-api/internal/http/response"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginHistory returns a user's login attempts, newest first.
func (h *Handler) LoginHistory(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if _, err := h.AccountService.GetUserByID(userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "User not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Login history fetch failed", err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	logs, total, err := h.UserLoginLogRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Login history fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, logs, pagination)
}
