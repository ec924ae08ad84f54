package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/storage"
)

type SkillsHandler struct {
	store storage.Storage
	cache *cache.Cache
}

func NewSkillsHandler(store storage.Storage, c *cache.Cache) *SkillsHandler {
	return &SkillsHandler{store: store, cache: c}
}

// List returns all skills, or only those in the category given by the
// ?category= query parameter.
func (h *SkillsHandler) List(c *gin.Context) {
	category := c.Query("category")
	key := "skills:list"
	if category != "" {
		key = "skills:category:" + category
	}

	if data, found := h.cache.Get(key); found {
		c.JSON(http.StatusOK, data)
		return
	}

	var (
		skills []models.Skill
		err    error
	)
	if category != "" {
		skills, err = h.store.ListSkillsByCategory(c.Request.Context(), category)
	} else {
		skills, err = h.store.ListSkills(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch skills",
			Message: err.Error(),
		})
		return
	}

	h.cache.Set(key, skills, cache.DefaultExpiration)
	c.JSON(http.StatusOK, skills)
}

func (h *SkillsHandler) Create(c *gin.Context) {
	var in models.InsertSkill
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	skill, err := h.store.CreateSkill(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create skill",
			Message: err.Error(),
		})
		return
	}

	h.invalidate()
	c.JSON(http.StatusCreated, skill)
}

func (h *SkillsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.UpdateSkill
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	skill, err := h.store.UpdateSkill(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "skill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update skill",
			Message: err.Error(),
		})
		return
	}

	h.invalidate()
	c.JSON(http.StatusOK, skill)
}

func (h *SkillsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteSkill(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete skill",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "skill not found"})
		return
	}

	h.invalidate()
	c.Status(http.StatusNoContent)
}

// invalidate drops every cached skills listing. Category keys are not
// enumerable, so the handler's whole cache is flushed; each handler owns
// its own cache instance.
func (h *SkillsHandler) invalidate() {
	h.cache.Flush()
}
