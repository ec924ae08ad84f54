package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"portfolio-backend/internal/models"
)

// ErrUsernameTaken is returned when creating a user with a username that
// already exists.
var ErrUsernameTaken = errors.New("username already taken")

// MemoryStorage keeps all records in process memory. State is lost on
// restart; this backend is the non-durable mode, used for local development
// and as a test double.
type MemoryStorage struct {
	mu sync.Mutex

	users    map[int]models.User
	projects map[int]models.Project
	skills   map[int]models.Skill
	messages map[int]models.Message
	resume   map[int]models.ResumeEntry

	userID    int
	projectID int
	skillID   int
	messageID int
	resumeID  int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[int]models.User),
		projects: make(map[int]models.Project),
		skills:   make(map[int]models.Skill),
		messages: make(map[int]models.Message),
		resume:   make(map[int]models.ResumeEntry),
	}
}

func (m *MemoryStorage) GetUser(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStorage) CreateUser(_ context.Context, in models.InsertUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}
	m.userID++
	u := models.User{
		ID:        m.userID,
		Username:  in.Username,
		Password:  in.Password,
		CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemoryStorage) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) GetProject(_ context.Context, id int) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStorage) CreateProject(_ context.Context, in models.InsertProject) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projectID++
	now := time.Now()
	// technologies is always materialized as a list, never nil
	techs := make([]string, len(in.Technologies))
	copy(techs, in.Technologies)
	p := models.Project{
		ID:           m.projectID,
		Title:        in.Title,
		Description:  in.Description,
		Image:        in.Image,
		Technologies: techs,
		DemoLink:     in.DemoLink,
		CodeLink:     in.CodeLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.projects[p.ID] = p
	return &p, nil
}

func (m *MemoryStorage) UpdateProject(_ context.Context, id int, in models.UpdateProject) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Technologies != nil {
		techs := make([]string, len(*in.Technologies))
		copy(techs, *in.Technologies)
		p.Technologies = techs
	}
	if in.DemoLink != nil {
		p.DemoLink = *in.DemoLink
	}
	if in.CodeLink != nil {
		p.CodeLink = *in.CodeLink
	}
	p.UpdatedAt = time.Now()
	m.projects[id] = p
	return &p, nil
}

func (m *MemoryStorage) DeleteProject(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return false, nil
	}
	delete(m.projects, id)
	return true, nil
}

func (m *MemoryStorage) ListSkills(_ context.Context) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) ListSkillsByCategory(_ context.Context, category string) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Skill, 0)
	for _, s := range m.skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) CreateSkill(_ context.Context, in models.InsertSkill) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skillID++
	now := time.Now()
	s := models.Skill{
		ID:        m.skillID,
		Name:      in.Name,
		Category:  in.Category,
		Level:     in.Level,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.skills[s.ID] = s
	return &s, nil
}

func (m *MemoryStorage) UpdateSkill(_ context.Context, id int, in models.UpdateSkill) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skills[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Level != nil {
		s.Level = *in.Level
	}
	if in.Icon != nil {
		s.Icon = *in.Icon
	}
	s.UpdatedAt = time.Now()
	m.skills[id] = s
	return &s, nil
}

func (m *MemoryStorage) DeleteSkill(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[id]; !ok {
		return false, nil
	}
	delete(m.skills, id)
	return true, nil
}

func (m *MemoryStorage) ListMessages(_ context.Context) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStorage) GetMessage(_ context.Context, id int) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &msg, nil
}

func (m *MemoryStorage) CreateMessage(_ context.Context, in models.InsertMessage) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messageID++
	msg := models.Message{
		ID:        m.messageID,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Read:      0,
		CreatedAt: time.Now(),
	}
	m.messages[msg.ID] = msg
	return &msg, nil
}

func (m *MemoryStorage) MarkMessageRead(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.messages[id]
	if !ok {
		return false, nil
	}
	msg.Read = 1
	m.messages[id] = msg
	return true, nil
}

func (m *MemoryStorage) DeleteMessage(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return false, nil
	}
	delete(m.messages, id)
	return true, nil
}

func (m *MemoryStorage) ListResumeEntries(_ context.Context) ([]models.ResumeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ResumeEntry, 0, len(m.resume))
	for _, e := range m.resume {
		out = append(out, e)
	}
	sortResumeEntries(out)
	return out, nil
}

func (m *MemoryStorage) ListResumeEntriesByType(_ context.Context, entryType string) ([]models.ResumeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ResumeEntry, 0)
	for _, e := range m.resume {
		if e.Type == entryType {
			out = append(out, e)
		}
	}
	sortResumeEntries(out)
	return out, nil
}

func (m *MemoryStorage) CreateResumeEntry(_ context.Context, in models.InsertResumeEntry) (*models.ResumeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumeID++
	now := time.Now()
	e := models.ResumeEntry{
		ID:           m.resumeID,
		Title:        in.Title,
		Organization: in.Organization,
		Period:       in.Period,
		Description:  in.Description,
		Type:         in.Type,
		Order:        in.Order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.resume[e.ID] = e
	return &e, nil
}

func (m *MemoryStorage) UpdateResumeEntry(_ context.Context, id int, in models.UpdateResumeEntry) (*models.ResumeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.resume[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Organization != nil {
		e.Organization = *in.Organization
	}
	if in.Period != nil {
		e.Period = *in.Period
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Type != nil {
		e.Type = *in.Type
	}
	if in.Order != nil {
		e.Order = *in.Order
	}
	e.UpdatedAt = time.Now()
	m.resume[id] = e
	return &e, nil
}

func (m *MemoryStorage) DeleteResumeEntry(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resume[id]; !ok {
		return false, nil
	}
	delete(m.resume, id)
	return true, nil
}

// sortResumeEntries orders ascending by sort key, ties broken by id so the
// ordering is stable.
func sortResumeEntries(entries []models.ResumeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].ID < entries[j].ID
	})
}
