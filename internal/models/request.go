package models

// InsertUser is the caller-supplied subset of User fields.
type InsertUser struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// InsertProject is the caller-supplied subset of Project fields.
type InsertProject struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Image        string   `json:"image" binding:"required"`
	Technologies []string `json:"technologies" binding:"required"`
	DemoLink     string   `json:"demoLink" binding:"required"`
	CodeLink     string   `json:"codeLink" binding:"required"`
}

// UpdateProject carries a partial update; nil fields are left unchanged.
type UpdateProject struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image"`
	Technologies *[]string `json:"technologies"`
	DemoLink     *string   `json:"demoLink"`
	CodeLink     *string   `json:"codeLink"`
}

type InsertSkill struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Level    int    `json:"level" binding:"gte=0,lte=100"`
	Icon     string `json:"icon"`
}

type UpdateSkill struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Level    *int    `json:"level" binding:"omitempty,gte=0,lte=100"`
	Icon     *string `json:"icon"`
}

type InsertMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type InsertResumeEntry struct {
	Title        string `json:"title" binding:"required"`
	Organization string `json:"organization" binding:"required"`
	Period       string `json:"period" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=education experience"`
	Order        int    `json:"order"`
}

type UpdateResumeEntry struct {
	Title        *string `json:"title"`
	Organization *string `json:"organization"`
	Period       *string `json:"period"`
	Description  *string `json:"description"`
	Type         *string `json:"type" binding:"omitempty,oneof=education experience"`
	Order        *int    `json:"order"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AnalyzeRequest struct {
	Message string `json:"message" binding:"required"`
}
