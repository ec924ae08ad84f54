package models

import "time"

// User holds an admin account. Passwords are stored as bcrypt hashes and
// never serialized back to clients.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is a portfolio project card.
type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	DemoLink     string    `json:"demoLink"`
	CodeLink     string    `json:"codeLink"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Skill categories are open strings in practice; these are the ones the
// frontend knows how to group.
const (
	SkillCategoryFrontend = "frontend"
	SkillCategoryBackend  = "backend"
	SkillCategoryOther    = "other"
)

// Skill is a named proficiency shown in the skills section. Level is a
// percentage between 0 and 100.
type Skill struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Level     int       `json:"level"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is a contact-form submission. Read is 0 until an admin marks the
// message as read. Message content is immutable, so there is no updatedAt.
type Message struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Read      int       `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Resume entry types.
const (
	ResumeTypeEducation  = "education"
	ResumeTypeExperience = "experience"
)

// ResumeEntry is one education or experience item. Entries of a type are
// listed ascending by Order.
type ResumeEntry struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Period       string    `json:"period"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
