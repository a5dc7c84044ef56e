package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/services"
	"github.com/salus-app/salus-backend/internal/middleware"
	"github.com/salus-app/salus-backend/internal/pkg/validation"
)

// UserController handles user record endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetUser returns a user record
func (c *UserController) GetUser(ctx *gin.Context) {
	requesterID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	targetID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.GetUser(ctx, requesterID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// UpdateUser partially updates a user record
func (c *UserController) UpdateUser(ctx *gin.Context) {
	requesterID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	targetID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FormatBindingError(err)))
		return
	}

	user, err := c.userService.UpdateUser(ctx, requesterID, targetID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// DeleteUser removes a user record and everything it owns
func (c *UserController) DeleteUser(ctx *gin.Context) {
	requesterID, err := authUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	targetID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.DeleteUser(ctx, requesterID, targetID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User deleted successfully"}})
}
