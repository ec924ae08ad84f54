package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeMessage_ParsesStructuredResult(t *testing.T) {
	fake := &fakeCompleter{
		jsonResult: `{"sentiment":"positive","urgency":"high","topics":["job offer","collaboration"]}`,
	}
	svc := newService(fake)

	analysis := svc.AnalyzeMessage(context.Background(), "I'd love to hire you!")
	assert.Equal(t, "positive", analysis.Sentiment)
	assert.Equal(t, "high", analysis.Urgency)
	assert.Equal(t, []string{"job offer", "collaboration"}, analysis.Topics)
	assert.Contains(t, fake.lastPrompt, "I'd love to hire you!")
}

func TestAnalyzeMessage_DefaultsOnError(t *testing.T) {
	fake := &fakeCompleter{jsonErr: errors.New("service down")}
	svc := newService(fake)

	analysis := svc.AnalyzeMessage(context.Background(), "anything")
	assert.Equal(t, "neutral", analysis.Sentiment)
	assert.Equal(t, "medium", analysis.Urgency)
	assert.Equal(t, []string{"general inquiry"}, analysis.Topics)
}

func TestAnalyzeMessage_DefaultsOnUnparseableResponse(t *testing.T) {
	fake := &fakeCompleter{jsonResult: "not json at all"}
	svc := newService(fake)

	analysis := svc.AnalyzeMessage(context.Background(), "anything")
	assert.Equal(t, "neutral", analysis.Sentiment)
	assert.Equal(t, "medium", analysis.Urgency)
	assert.Equal(t, []string{"general inquiry"}, analysis.Topics)
}

func TestAnalyzeMessage_FillsMissingFields(t *testing.T) {
	fake := &fakeCompleter{jsonResult: `{"sentiment":"negative"}`}
	svc := newService(fake)

	analysis := svc.AnalyzeMessage(context.Background(), "anything")
	assert.Equal(t, "negative", analysis.Sentiment)
	assert.Equal(t, "medium", analysis.Urgency)
	assert.Equal(t, []string{"general inquiry"}, analysis.Topics)
}

func TestAnalyzeMessage_TruncatesTopics(t *testing.T) {
	fake := &fakeCompleter{
		jsonResult: `{"sentiment":"neutral","urgency":"low","topics":["a","b","c","d","e"]}`,
	}
	svc := newService(fake)

	analysis := svc.AnalyzeMessage(context.Background(), "anything")
	assert.Len(t, analysis.Topics, 3)
}
