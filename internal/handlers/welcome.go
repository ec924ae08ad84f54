package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/models"
)

type WelcomeHandler struct {
	assistant *assistant.Service
	now       func() time.Time
}

func NewWelcomeHandler(a *assistant.Service) *WelcomeHandler {
	return &WelcomeHandler{assistant: a, now: time.Now}
}

// Welcome returns a short personalized greeting. Time of day comes from the
// server clock; the ?returning=true query flag marks repeat visitors.
func (h *WelcomeHandler) Welcome(c *gin.Context) {
	message := h.assistant.WelcomeMessage(c.Request.Context(), assistant.VisitorInfo{
		TimeOfDay:        timeOfDay(h.now().Hour()),
		ReturningVisitor: c.Query("returning") == "true",
		Referrer:         c.GetHeader("Referer"),
		BrowserInfo:      c.GetHeader("User-Agent"),
	})

	c.JSON(http.StatusOK, models.WelcomeResponse{Message: message})
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}
