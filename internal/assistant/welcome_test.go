package assistant_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/assistant"
)

// fakeCompleter scripts the external generation service.
type fakeCompleter struct {
	completeResult string
	completeErr    error
	jsonResult     string
	jsonErr        error
	lastPrompt     string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	f.lastPrompt = prompt
	return f.completeResult, f.completeErr
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.jsonResult, f.jsonErr
}

func newService(completer assistant.Completer) *assistant.Service {
	return assistant.NewService(completer, rand.New(rand.NewSource(1)))
}

func TestWelcomeMessage_UsesGeneratedText(t *testing.T) {
	fake := &fakeCompleter{completeResult: "Hey, great to have you here!"}
	svc := newService(fake)

	msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{TimeOfDay: "morning"})
	assert.Equal(t, "Hey, great to have you here!", msg)
	assert.Contains(t, fake.lastPrompt, "morning")
	assert.Contains(t, fake.lastPrompt, "first-time visitor")
}

func TestWelcomeMessage_FallsBackOnError(t *testing.T) {
	fake := &fakeCompleter{completeErr: errors.New("service unreachable")}
	svc := newService(fake)

	msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{TimeOfDay: "morning"})
	require.NotEmpty(t, msg)
	assert.Contains(t, assistant.SelectFallbackPool("morning", false), msg)
}

func TestWelcomeMessage_FallsBackOnEmptyResponse(t *testing.T) {
	fake := &fakeCompleter{completeResult: ""}
	svc := newService(fake)

	msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{TimeOfDay: "evening"})
	require.NotEmpty(t, msg)
	assert.Contains(t, assistant.SelectFallbackPool("evening", false), msg)
}

func TestWelcomeMessage_ReturningBeatsTimeOfDay(t *testing.T) {
	fake := &fakeCompleter{completeErr: errors.New("down")}
	svc := newService(fake)

	for i := 0; i < 20; i++ {
		msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{
			TimeOfDay:        "morning",
			ReturningVisitor: true,
		})
		assert.Contains(t, assistant.SelectFallbackPool("anything", true), msg)
	}
}

func TestWelcomeMessage_UnknownTimeOfDayUsesDayPool(t *testing.T) {
	fake := &fakeCompleter{completeErr: errors.New("down")}
	svc := newService(fake)

	msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{TimeOfDay: "midnight"})
	assert.Contains(t, assistant.SelectFallbackPool("day", false), msg)
}

func TestSelectFallbackPool(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay string
		returning bool
		wantFirst string
	}{
		{"returning ignores time of day", "morning", true, "Welcome back! Great to see you again."},
		{"morning pool", "morning", false, "Good morning! Welcome to my portfolio showcase."},
		{"afternoon pool", "afternoon", false, "Good afternoon! Thanks for visiting my portfolio today."},
		{"evening pool", "evening", false, "Good evening! Thanks for stopping by my portfolio."},
		{"unknown falls back to day", "brunch", false, "Welcome to my portfolio! I'm excited to share my work with you."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := assistant.SelectFallbackPool(tt.timeOfDay, tt.returning)
			require.Len(t, pool, 3)
			assert.Equal(t, tt.wantFirst, pool[0])
		})
	}
}

func TestWelcomeMessage_NeverEmpty(t *testing.T) {
	fake := &fakeCompleter{completeErr: errors.New("down")}
	svc := newService(fake)

	for _, tod := range []string{"morning", "afternoon", "evening", "day", "", "weird"} {
		for _, returning := range []bool{true, false} {
			msg := svc.WelcomeMessage(context.Background(), assistant.VisitorInfo{
				TimeOfDay:        tod,
				ReturningVisitor: returning,
			})
			assert.NotEmpty(t, msg)
		}
	}
}
