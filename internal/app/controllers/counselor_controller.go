package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/services"
	"github.com/mindease/mindease-server/internal/middleware"
)

// CounselorController serves the counselor directory
type CounselorController struct {
	counselorService services.CounselorService
}

// NewCounselorController creates a new CounselorController
func NewCounselorController(counselorService services.CounselorService) *CounselorController {
	return &CounselorController{counselorService: counselorService}
}

// ListByInstitution lists counselors of one institution
// @Summary Counselors by institution
// @Tags counselors
// @Produce json
// @Param institution path string true "Institution name, exact match"
// @Success 200 {object} dto.CounselorListResponse
// @Router /auth/counselors/{institution} [get]
func (c *CounselorController) ListByInstitution(ctx *gin.Context) {
	counselors, err := c.counselorService.ListByInstitution(ctx.Request.Context(), ctx.Param("institution"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CounselorListResponse{Counselors: counselors})
}
