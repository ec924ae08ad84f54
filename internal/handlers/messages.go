package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/storage"
)

type MessagesHandler struct {
	store     storage.Storage
	assistant *assistant.Service
}

func NewMessagesHandler(store storage.Storage, a *assistant.Service) *MessagesHandler {
	return &MessagesHandler{store: store, assistant: a}
}

// Create accepts a contact-form submission. Classification of the message
// content is advisory and runs in the background; it can never block or
// fail the submission.
func (h *MessagesHandler) Create(c *gin.Context) {
	var in models.InsertMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	msg, err := h.store.CreateMessage(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to send message",
			Message: err.Error(),
		})
		return
	}

	go func(id int, text string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		analysis := h.assistant.AnalyzeMessage(ctx, text)
		log.Printf("message %d analysis: sentiment=%s urgency=%s topics=%v",
			id, analysis.Sentiment, analysis.Urgency, analysis.Topics)
	}(msg.ID, msg.Message)

	c.JSON(http.StatusCreated, models.MessageSentResponse{
		Success: true,
		Message: "Your message has been sent successfully!",
	})
}

func (h *MessagesHandler) List(c *gin.Context) {
	messages, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch messages",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessagesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	msg, err := h.store.GetMessage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch message",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessagesHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	marked, err := h.store.MarkMessageRead(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to mark message as read",
			Message: err.Error(),
		})
		return
	}
	if !marked {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *MessagesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteMessage(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete message",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "message not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Analyze classifies arbitrary message text on demand. The assistant
// absorbs generation failures, so this always returns a usable result.
func (h *MessagesHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "valid message text is required"})
		return
	}

	analysis := h.assistant.AnalyzeMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, models.AnalysisResponse{
		Sentiment: analysis.Sentiment,
		Urgency:   analysis.Urgency,
		Topics:    analysis.Topics,
	})
}
