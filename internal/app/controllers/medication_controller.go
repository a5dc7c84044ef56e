package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/services"
	"github.com/salus-app/salus-backend/internal/middleware"
	"github.com/salus-app/salus-backend/internal/pkg/validation"
)

// MedicationController handles medication endpoints
type MedicationController struct {
	medicationService *services.MedicationService
}

// NewMedicationController creates a new MedicationController
func NewMedicationController(medicationService *services.MedicationService) *MedicationController {
	return &MedicationController{medicationService: medicationService}
}

// GetMedications lists the user's medications
func (c *MedicationController) GetMedications(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	medications, err := c.medicationService.GetMedications(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: medications})
}

// GetActiveMedications lists the medications currently in effect
func (c *MedicationController) GetActiveMedications(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	medications, err := c.medicationService.GetActiveMedications(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: medications})
}

// GetMedication returns a single medication
func (c *MedicationController) GetMedication(ctx *gin.Context) {
	userID, err := scopedUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	medicationID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	medication, err := c.medicationService.GetMedication(ctx, userID, medicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: medication})
}

// CreateMedication records a new medication
func (c *MedicationController) CreateMedication(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateMedicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	medication, err := c.medicationService.CreateMedication(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: medication})
}

// UpdateMedication partially updates a medication
func (c *MedicationController) UpdateMedication(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	medicationID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateMedicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	medication, err := c.medicationService.UpdateMedication(ctx, userID, medicationID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: medication})
}

// DeleteMedication removes a medication
func (c *MedicationController) DeleteMedication(ctx *gin.Context) {
	userID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	medicationID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.medicationService.DeleteMedication(ctx, userID, medicationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Medication deleted successfully"}})
}
