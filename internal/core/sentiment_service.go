package core

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SentimentResult is the per-request verdict returned to the caller.
type SentimentResult struct {
	Comment    string  `json:"comment"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Response   string  `json:"response"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentService delegates label+confidence scoring to a hosted
// sentiment-analysis model and maps the verdict to a canned reply.
type SentimentService struct {
	client *resty.Client
	apiURL string
	logger *zap.Logger
}

func NewSentimentService(apiURL, apiToken string, logger *zap.Logger) *SentimentService {
	client := resty.New().SetTimeout(30 * time.Second)
	if apiToken != "" {
		client.SetAuthToken(apiToken)
	}
	return &SentimentService{
		client: client,
		apiURL: apiURL,
		logger: logger,
	}
}

// Analyze classifies a comment and selects a response by confidence bucket.
func (s *SentimentService) Analyze(ctx context.Context, comment string) (*SentimentResult, error) {
	if comment == "" {
		return nil, &ValidationError{Msg: "No comment provided"}
	}

	// The inference endpoint returns one candidate list per input.
	var candidates [][]labelScore
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"inputs": comment}).
		SetResult(&candidates).
		Post(s.apiURL)
	if err != nil {
		return nil, &ExtractionError{Msg: "sentiment inference request failed", Err: err}
	}
	if resp.IsError() {
		return nil, &ExtractionError{Msg: fmt.Sprintf("sentiment inference returned status %d", resp.StatusCode())}
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return nil, &ExtractionError{Msg: "sentiment inference returned no candidates"}
	}

	best := candidates[0][0]
	for _, c := range candidates[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	s.logger.Debug("sentiment classified",
		zap.String("label", best.Label),
		zap.Float64("score", best.Score))

	return &SentimentResult{
		Comment:    comment,
		Sentiment:  best.Label,
		Confidence: best.Score,
		Response:   responseFor(best.Label, best.Score),
	}, nil
}

// responseFor walks the ordered threshold ladder for the label and picks
// the canned reply for its confidence bucket.
func responseFor(label string, score float64) string {
	switch label {
	case "POSITIVE":
		switch {
		case score > 0.9:
			return "We're thrilled that you love our product. Thank you for your kind words, and we look forward to serving you again."
		case score > 0.75:
			return "It's great to know that you had a good experience. Thank you for your support, and we hope to see you again soon."
		case score > 0.5:
			return "We're glad that you're happy with our product. Thank you for choosing us."
		default:
			return "Your feedback is positive, and we appreciate it. If there's anything more we can do, please let us know."
		}
	case "NEGATIVE":
		switch {
		case score > 0.9:
			return "We sincerely apologize for the inconvenience caused. Your experience matters to us, and we promise to ensure this doesn't happen again."
		case score > 0.75:
			return "We're sorry to hear about your experience. Please know that we're working on improving and will address this issue."
		case score > 0.5:
			return "We regret that your experience didn't meet your expectations. Thank you for your feedback, and we'll strive to do better."
		default:
			return "We apologize if our product didn't fully meet your expectations. Your feedback is valuable to us, and we'll work on improving."
		}
	default:
		return "Thank you for your feedback. It seems neutral, but if there's anything specific you'd like to share, we're here to listen."
	}
}
