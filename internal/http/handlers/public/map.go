package public

import (
	"errors"

	"github.com/yuvasaathi/yuvasaathi-api/internal/http/response"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BiharMapData returns the whole-state district layer.
func (h *Handler) BiharMapData(c *gin.Context) {
	districts, err := h.GeoService.StateMap()
	if err != nil {
		respondError(c, response.CodeInternal, "Map data unavailable", err)
		return
	}
	response.Success(c, districts)
}

// DistrictData returns the skills summary and blocks of a district.
func (h *Handler) DistrictData(c *gin.Context) {
	data, err := h.GeoService.DistrictData(c.Param("district_name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "District not found", nil)
		default:
			respondError(c, response.CodeInternal, "Map data unavailable", err)
		}
		return
	}
	response.Success(c, data)
}

// MandalData returns the skills summary and villages of a mandal.
func (h *Handler) MandalData(c *gin.Context) {
	data, err := h.GeoService.MandalData(c.Param("mandal_name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Mandal not found", nil)
		default:
			respondError(c, response.CodeInternal, "Map data unavailable", err)
		}
		return
	}
	response.Success(c, data)
}
