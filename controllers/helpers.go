package controllers

import (
	"errors"
	"log"
	"net/http"

	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// callerID extracts the authenticated user's id from the gin context.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("userId")
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	return id, true
}

// respondWorkflowError maps booking workflow errors to HTTP statuses.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSlotUnavailable):
		utils.RespondWithError(c, http.StatusBadRequest, "Selected time is not available")
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "This time is already booked")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidStateTransition):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("workflow error: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
