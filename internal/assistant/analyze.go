package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Analysis is the structured classification of a contact-form message.
type Analysis struct {
	Sentiment string   `json:"sentiment"`
	Urgency   string   `json:"urgency"`
	Topics    []string `json:"topics"`
}

// neutralAnalysis is returned whenever classification cannot be completed.
func neutralAnalysis() Analysis {
	return Analysis{
		Sentiment: "neutral",
		Urgency:   "medium",
		Topics:    []string{"general inquiry"},
	}
}

// AnalyzeMessage classifies a contact message by sentiment, urgency and up
// to three topics. The result is advisory only: any failure resolves to a
// neutral default so the submission flow that triggered it can never break.
func (s *Service) AnalyzeMessage(ctx context.Context, message string) Analysis {
	prompt := fmt.Sprintf(`Analyze the following message from a contact form on my portfolio website:

"%s"

Provide analysis in JSON format with these fields:
- sentiment: either "positive", "neutral", or "negative"
- urgency: either "high", "medium", or "low"
- topics: an array of up to 3 key topics mentioned in the message`, message)

	raw, err := s.completer.CompleteJSON(ctx, prompt)
	if err != nil {
		log.Printf("message analysis failed, using neutral default: %v", err)
		return neutralAnalysis()
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		log.Printf("message analysis returned unparseable output, using neutral default: %v", err)
		return neutralAnalysis()
	}

	if analysis.Sentiment == "" {
		analysis.Sentiment = "neutral"
	}
	if analysis.Urgency == "" {
		analysis.Urgency = "medium"
	}
	if len(analysis.Topics) == 0 {
		analysis.Topics = []string{"general inquiry"}
	} else if len(analysis.Topics) > 3 {
		analysis.Topics = analysis.Topics[:3]
	}
	return analysis
}
