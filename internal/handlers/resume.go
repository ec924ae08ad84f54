package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/storage"
)

type ResumeHandler struct {
	store storage.Storage
	cache *cache.Cache
}

func NewResumeHandler(store storage.Storage, c *cache.Cache) *ResumeHandler {
	return &ResumeHandler{store: store, cache: c}
}

// List returns resume entries sorted ascending by their order key,
// optionally filtered by ?type=education or ?type=experience.
func (h *ResumeHandler) List(c *gin.Context) {
	entryType := c.Query("type")
	key := "resume:list"
	if entryType != "" {
		key = "resume:type:" + entryType
	}

	if data, found := h.cache.Get(key); found {
		c.JSON(http.StatusOK, data)
		return
	}

	var (
		entries []models.ResumeEntry
		err     error
	)
	if entryType != "" {
		entries, err = h.store.ListResumeEntriesByType(c.Request.Context(), entryType)
	} else {
		entries, err = h.store.ListResumeEntries(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch resume entries",
			Message: err.Error(),
		})
		return
	}

	h.cache.Set(key, entries, cache.DefaultExpiration)
	c.JSON(http.StatusOK, entries)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var in models.InsertResumeEntry
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	entry, err := h.store.CreateResumeEntry(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create resume entry",
			Message: err.Error(),
		})
		return
	}

	h.cache.Flush()
	c.JSON(http.StatusCreated, entry)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.UpdateResumeEntry
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	entry, err := h.store.UpdateResumeEntry(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "resume entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update resume entry",
			Message: err.Error(),
		})
		return
	}

	h.cache.Flush()
	c.JSON(http.StatusOK, entry)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteResumeEntry(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete resume entry",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "resume entry not found"})
		return
	}

	h.cache.Flush()
	c.Status(http.StatusNoContent)
}
