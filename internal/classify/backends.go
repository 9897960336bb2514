package classify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jonreiter/govader"
	openai "github.com/sashabaranov/go-openai"

	"github.com/kanithisathvik/aspectrank/internal/clients"
	"github.com/kanithisathvik/aspectrank/internal/models"
)

// Backend performs one classification attempt for one review. The raw
// return value is whatever shape the service answered with; the client
// runs it through the response parser.
type Backend interface {
	Name() string
	Classify(ctx context.Context, sentence string, aspects []string) (any, error)
}

// NewBackendFromEnv picks the classifier backend from
// CLASSIFIER_BACKEND: "http" (default), "openai", or "vader".
func NewBackendFromEnv() Backend {
	backend := os.Getenv("CLASSIFIER_BACKEND")
	switch backend {
	case "openai":
		return &OpenAIBackend{}
	case "vader":
		return NewVADERBackend()
	case "http", "":
		return &HTTPBackend{}
	default:
		slog.Warn("[Classifier] Unknown backend, using http",
			slog.String("backend", backend))
		return &HTTPBackend{}
	}
}

// HTTPBackend calls the hosted aspect-sentiment service.
type HTTPBackend struct{}

func (b *HTTPBackend) Name() string { return "http" }

func (b *HTTPBackend) Classify(ctx context.Context, sentence string, aspects []string) (any, error) {
	return clients.GetABSAClient().ClassifyAspects(ctx, models.ClassifierRequest{
		Sentence: sentence,
		Aspects:  strings.Join(aspects, ","),
	})
}

// OpenAIBackend asks a chat model for per-aspect labels. The model is
// told to answer "aspect: sentiment" pairs, but it takes liberties with
// the format, which is exactly what the response parser absorbs.
type OpenAIBackend struct{}

func (b *OpenAIBackend) Name() string { return "openai" }

const openAIClassifierPrompt = `You are an aspect-based sentiment classifier for product reviews.
For the review given by the user, classify the sentiment toward each of these aspects: %s.
Answer with one "aspect: sentiment" pair per aspect, separated by commas.
Sentiment must be one of positive, negative, or neutral.`

func (b *OpenAIBackend) Classify(ctx context.Context, sentence string, aspects []string) (any, error) {
	resp, err := clients.GetOpenAIClient().Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(openAIClassifierPrompt, strings.Join(aspects, ", ")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: sentence,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai classification failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// VADERBackend classifies locally with a VADER intensity analyzer.
// Used for offline and dev runs where no external service exists. Each
// aspect is scored over the clauses that mention it.
type VADERBackend struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERBackend() *VADERBackend {
	return &VADERBackend{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (b *VADERBackend) Name() string { return "vader" }

func (b *VADERBackend) Classify(ctx context.Context, sentence string, aspects []string) (any, error) {
	var pairs []string

	clauses := splitClauses(sentence)
	for _, aspect := range aspects {
		key := strings.ToLower(strings.TrimSpace(aspect))

		var mentions []string
		for _, clause := range clauses {
			if mentionsAspect(clause, key) {
				mentions = append(mentions, clause)
			}
		}
		if len(mentions) == 0 {
			continue
		}

		score := b.analyzer.PolarityScores(strings.Join(mentions, ". ")).Compound

		var label string
		if score >= 0.20 {
			label = "positive"
		} else if score <= -0.20 {
			label = "negative"
		} else {
			label = "neutral"
		}
		pairs = append(pairs, key+": "+label)
	}

	return strings.Join(pairs, ", "), nil
}
