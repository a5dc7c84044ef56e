package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/services"
	"github.com/salus-app/salus-backend/internal/middleware"
	"github.com/salus-app/salus-backend/internal/pkg/validation"
)

// WellnessController handles wellness log endpoints
type WellnessController struct {
	wellnessService *services.WellnessService
}

// NewWellnessController creates a new WellnessController
func NewWellnessController(wellnessService *services.WellnessService) *WellnessController {
	return &WellnessController{wellnessService: wellnessService}
}

// GetWellnessLogs lists the user's wellness logs
func (c *WellnessController) GetWellnessLogs(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	logs, err := c.wellnessService.GetWellnessLogs(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: logs})
}

// GetWellnessStats returns 30-day statistics for the user
func (c *WellnessController) GetWellnessStats(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.wellnessService.GetWellnessStats(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats})
}

// GetWellnessLog returns a single wellness log
func (c *WellnessController) GetWellnessLog(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	logID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	log, err := c.wellnessService.GetWellnessLog(ctx, userID, logID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: log})
}

// CreateWellnessLog records a wellness log for a day
func (c *WellnessController) CreateWellnessLog(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateWellnessLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	log, err := c.wellnessService.CreateWellnessLog(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: log})
}

// UpdateWellnessLog partially updates a wellness log
func (c *WellnessController) UpdateWellnessLog(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	logID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateWellnessLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	log, err := c.wellnessService.UpdateWellnessLog(ctx, userID, logID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: log})
}

// DeleteWellnessLog removes a wellness log
func (c *WellnessController) DeleteWellnessLog(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	logID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.wellnessService.DeleteWellnessLog(ctx, userID, logID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Wellness log deleted successfully"}})
}
