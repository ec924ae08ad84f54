package assistant

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
)

// Completer is the narrow slice of the text-generation client the assistant
// needs. Keeping it an interface lets the fallback policy be tested without
// network access.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// VisitorInfo carries the context used to personalize a welcome message.
// Referrer and BrowserInfo only enrich the generation prompt; the fallback
// pools key on TimeOfDay and ReturningVisitor alone.
type VisitorInfo struct {
	TimeOfDay        string
	ReturningVisitor bool
	Referrer         string
	BrowserInfo      string
}

// Service produces visitor-facing text. Every method always returns a
// usable value: external-service failures are absorbed here and resolved
// through deterministic fallbacks.
type Service struct {
	completer Completer

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(completer Completer, rng *rand.Rand) *Service {
	return &Service{completer: completer, rng: rng}
}

var timeBasedMessages = map[string][]string{
	"morning": {
		"Good morning! Welcome to my portfolio showcase.",
		"Rise and shine! Excited to share my work with you this morning.",
		"Morning visitor! Thanks for starting your day with my portfolio.",
	},
	"afternoon": {
		"Good afternoon! Thanks for visiting my portfolio today.",
		"Afternoon explorer! Discover my latest projects and skills.",
		"Welcome! Hope you're having a productive afternoon.",
	},
	"evening": {
		"Good evening! Thanks for stopping by my portfolio.",
		"Evening visitor! Explore my projects at your leisure.",
		"Welcome! Wind down your day browsing through my work.",
	},
	"day": {
		"Welcome to my portfolio! I'm excited to share my work with you.",
		"Hello there! Explore my projects and get in touch.",
		"Thanks for visiting! I hope you enjoy browsing my work.",
	},
}

var returningMessages = []string{
	"Welcome back! Great to see you again.",
	"Thanks for returning! There's always something new to discover.",
	"Glad you're back! Feel free to explore my latest updates.",
}

// WelcomeMessage generates a short personalized greeting. The external call
// is attempted first; an empty response or any error falls through to the
// fallback pool, so the caller never observes a generation failure.
func (s *Service) WelcomeMessage(ctx context.Context, info VisitorInfo) string {
	if info.TimeOfDay == "" {
		info.TimeOfDay = "day"
	}
	if info.Referrer == "" {
		info.Referrer = "direct"
	}

	prompt := welcomePrompt(info)
	message, err := s.completer.Complete(ctx, prompt, 120)
	if err != nil {
		log.Printf("welcome message generation failed, using fallback: %v", err)
		return s.fallbackWelcomeMessage(info.TimeOfDay, info.ReturningVisitor)
	}
	if message == "" {
		return s.fallbackWelcomeMessage(info.TimeOfDay, info.ReturningVisitor)
	}
	return message
}

func welcomePrompt(info VisitorInfo) string {
	visitorStatus := "This is a first-time visitor"
	if info.ReturningVisitor {
		visitorStatus = "This is a returning visitor"
	}
	return fmt.Sprintf(`Generate a short, friendly welcome message for a visitor to my personal portfolio website.

Additional context:
- Time of day: %s (morning/afternoon/evening)
- %s
- They came from: %s
- Browser info: %s

The message should be personal, warm, and professional. Keep it under 150 characters.
Do not include quotation marks in the response.`,
		info.TimeOfDay, visitorStatus, info.Referrer, info.BrowserInfo)
}

// fallbackWelcomeMessage picks uniformly at random from a fixed pool.
// Returning-visitor status takes precedence over time-of-day framing;
// an unrecognized time of day gets the generic "day" pool.
func (s *Service) fallbackWelcomeMessage(timeOfDay string, returningVisitor bool) string {
	pool := SelectFallbackPool(timeOfDay, returningVisitor)

	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.Intn(len(pool))]
}

// SelectFallbackPool is the pure pool-selection policy, exposed so tests
// can assert membership.
func SelectFallbackPool(timeOfDay string, returningVisitor bool) []string {
	if returningVisitor {
		return returningMessages
	}
	if pool, ok := timeBasedMessages[timeOfDay]; ok {
		return pool
	}
	return timeBasedMessages["day"]
}
