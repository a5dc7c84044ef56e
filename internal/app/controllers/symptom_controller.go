package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/services"
	"github.com/salus-app/salus-backend/internal/middleware"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/validation"
)

// SymptomController handles symptom endpoints
type SymptomController struct {
	symptomService *services.SymptomService
}

// NewSymptomController creates a new SymptomController
func NewSymptomController(symptomService *services.SymptomService) *SymptomController {
	return &SymptomController{symptomService: symptomService}
}

// scopedUserID parses the :userId path segment and checks it matches the
// authenticated user. Listing someone else's data is denied outright.
func scopedUserID(ctx *gin.Context) (int64, error) {
	authID, err := authUserID(ctx)
	if err != nil {
		return 0, err
	}
	pathID, err := parseIDParam(ctx, "userId")
	if err != nil {
		return 0, err
	}
	if pathID != authID {
		return 0, apperrors.ErrPermissionDenied
	}
	return authID, nil
}

// GetSymptoms lists the user's symptoms
func (c *SymptomController) GetSymptoms(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	symptoms, err := c.symptomService.GetSymptoms(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: symptoms})
}

// GetSymptom returns a single symptom
func (c *SymptomController) GetSymptom(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	symptomID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	symptom, err := c.symptomService.GetSymptom(ctx, userID, symptomID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: symptom})
}

// CreateSymptom records a new symptom
func (c *SymptomController) CreateSymptom(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateSymptomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	symptom, err := c.symptomService.CreateSymptom(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: symptom})
}

// UpdateSymptom partially updates a symptom
func (c *SymptomController) UpdateSymptom(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	symptomID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateSymptomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	symptom, err := c.symptomService.UpdateSymptom(ctx, userID, symptomID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: symptom})
}

// DeleteSymptom removes a symptom
func (c *SymptomController) DeleteSymptom(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	symptomID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.symptomService.DeleteSymptom(ctx, userID, symptomID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Symptom deleted successfully"}})
}
