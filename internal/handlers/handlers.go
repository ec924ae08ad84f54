package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/models"
)

// parseID extracts the numeric :id path parameter. Invalid ids are rejected
// here with a 400 so the storage layer only ever sees well-typed keys.
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
