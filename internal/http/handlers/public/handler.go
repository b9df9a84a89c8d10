package public

import (
	"github.com/yuvasaathi/yuvasaathi-api/internal/http/handlers/shared"
	"github.com/yuvasaathi/yuvasaathi-api/internal/provider"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the public API surface.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

func loginMeta(c *gin.Context) service.LoginMeta {
	meta := service.LoginMeta{ClientIP: c.ClientIP()}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			meta.RequestID = id
		}
	}
	return meta
}
