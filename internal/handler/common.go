package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseUintParam parses a uint path parameter
func parseUintParam(c *gin.Context, paramName string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDateParam parses a YYYY-MM-DD path parameter
func parseDateParam(c *gin.Context, paramName string) (time.Time, error) {
	return time.Parse("2006-01-02", c.Param(paramName))
}

// parsePagination reads skip/limit query parameters with defaults
func parsePagination(c *gin.Context, defaultLimit int) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

// domainErrorResponse maps domain errors onto HTTP status codes
func domainErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidStatus):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// actorID returns the authenticated user id injected by the auth middleware
func actorID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}
