package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/middleware"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
)

// parseIDParam parses a positive ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}

// authUserID returns the user ID stored by the auth middleware. Routes using
// it are always behind JWTAuth, so a missing value is a programming error and
// surfaces as an internal error via apperrors.
func authUserID(ctx *gin.Context) (int64, error) {
	id, ok := middleware.GetUserID(ctx)
	if !ok {
		return 0, apperrors.ErrTokenInvalid
	}
	return id, nil
}
