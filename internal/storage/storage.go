package storage

import (
	"context"
	"errors"

	"portfolio-backend/internal/models"
)

// ErrNotFound is returned by gets and updates when no record exists at the
// given id. Deletes report absence through their bool instead.
var ErrNotFound = errors.New("record not found")

// Storage is the backend-agnostic data-access contract. The HTTP layer is
// written against this interface only, so the memory and postgres backends
// are interchangeable at startup.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error)

	// Projects
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	CreateProject(ctx context.Context, in models.InsertProject) (*models.Project, error)
	UpdateProject(ctx context.Context, id int, in models.UpdateProject) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) (bool, error)

	// Skills
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]models.Skill, error)
	CreateSkill(ctx context.Context, in models.InsertSkill) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id int, in models.UpdateSkill) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id int) (bool, error)

	// Messages
	ListMessages(ctx context.Context) ([]models.Message, error)
	GetMessage(ctx context.Context, id int) (*models.Message, error)
	CreateMessage(ctx context.Context, in models.InsertMessage) (*models.Message, error)
	MarkMessageRead(ctx context.Context, id int) (bool, error)
	DeleteMessage(ctx context.Context, id int) (bool, error)

	// Resume entries
	ListResumeEntries(ctx context.Context) ([]models.ResumeEntry, error)
	ListResumeEntriesByType(ctx context.Context, entryType string) ([]models.ResumeEntry, error)
	CreateResumeEntry(ctx context.Context, in models.InsertResumeEntry) (*models.ResumeEntry, error)
	UpdateResumeEntry(ctx context.Context, id int, in models.UpdateResumeEntry) (*models.ResumeEntry, error)
	DeleteResumeEntry(ctx context.Context, id int) (bool, error)
}
