package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

// AnalysisResponse is the structured classification of a contact message.
type AnalysisResponse struct {
	Sentiment string   `json:"sentiment"`
	Urgency   string   `json:"urgency"`
	Topics    []string `json:"topics"`
}

type MessageSentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
