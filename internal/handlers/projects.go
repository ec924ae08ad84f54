package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/storage"
)

const projectsListKey = "projects:list"

type ProjectsHandler struct {
	store storage.Storage
	cache *cache.Cache
}

func NewProjectsHandler(store storage.Storage, c *cache.Cache) *ProjectsHandler {
	return &ProjectsHandler{store: store, cache: c}
}

func (h *ProjectsHandler) List(c *gin.Context) {
	if data, found := h.cache.Get(projectsListKey); found {
		c.JSON(http.StatusOK, data)
		return
	}

	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch projects",
			Message: err.Error(),
		})
		return
	}

	h.cache.Set(projectsListKey, projects, cache.DefaultExpiration)
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) Create(c *gin.Context) {
	var in models.InsertProject
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.store.CreateProject(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	h.cache.Delete(projectsListKey)
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.UpdateProject
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.store.UpdateProject(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update project",
			Message: err.Error(),
		})
		return
	}

	h.cache.Delete(projectsListKey)
	c.JSON(http.StatusOK, project)
}

func (h *ProjectsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete project",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	h.cache.Delete(projectsListKey)
	c.Status(http.StatusNoContent)
}
