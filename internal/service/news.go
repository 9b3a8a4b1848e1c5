package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invisio/invisio-backend/internal/llm"
	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/queue"
)

// News stores submitted news and turns the whole collection into an AI
// generated suggestion on request.
type News struct {
	news        NewsStore
	suggestions *Suggestions
	gen         TextGenerator
	log         *slog.Logger
}

func NewNews(news NewsStore, suggestions *Suggestions, gen TextGenerator, log *slog.Logger) *News {
	return &News{news: news, suggestions: suggestions, gen: gen, log: log}
}

// Submit stores items in one batch and returns how many were written.
func (s *News) Submit(ctx context.Context, items []model.NewsItem) (int, error) {
	n, err := s.news.InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("service.News.Submit: %w", err)
	}
	return n, nil
}

func (s *News) All(ctx context.Context) ([]model.NewsItem, error) {
	items, err := s.news.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.News.All: %w", err)
	}
	return items, nil
}

// Analysis is the outcome of Analyze: the stored suggestion and the full
// reply it was extracted from.
type Analysis struct {
	Suggestion model.Suggestion
	Reply      string
}

// Analyze prompts the text generator with every stored news item and the
// user's request, then saves the suggestion found in the reply as a
// private suggestion owned by userID. Generator errors are returned
// wrapped, so callers can match llm.ErrUnavailable and llm.ErrBadResponse.
func (s *News) Analyze(ctx context.Context, userID, request string) (Analysis, error) {
	const op = "service.News.Analyze"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	items, err := s.news.All(ctx)
	if err != nil {
		return Analysis{}, fmt.Errorf("%s: load news: %w", op, err)
	}
	if len(items) == 0 {
		return Analysis{}, ErrNoNews
	}

	reply, err := s.gen.Generate(ctx, BuildPrompt(items, request))
	if err != nil {
		log.Warn("generation failed", slog.Any("err", err))
		return Analysis{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("raw ai reply", slog.String("reply", reply))

	parsed := llm.ParseSuggestion(reply)
	sg, err := s.suggestions.create(ctx, model.Suggestion{
		Headline:    parsed.Headline,
		Description: parsed.Description,
		UserID:      userID,
	}, queue.SourceAnalysis)
	if err != nil {
		return Analysis{}, fmt.Errorf("%s: %w", op, err)
	}
	return Analysis{Suggestion: sg, Reply: reply}, nil
}

const promptHeader = `
You are a Business Insight Assistant. Analyze the following news text and the user's specific request.
Provide:
1.  A concise summary of the key business insights derived from the news, directly addressing the user's request.
2.  Key entities (companies, people, events) and topics discussed, highlighting important connections.
3.  Actionable recommendations for investors, business owners, and analysts, based on your analysis of the news and the user's request.
4.  Finally, provide a very concise, one-sentence "Suggestion Headline" and a brief "Suggestion Description" (2-3 sentences) based on the most important actionable recommendation.

Format your response as plain text, ensuring the "Suggestion Headline" and "Suggestion Description" are clearly labeled at the end.
Do NOT include any JSON, markdown code blocks, or conversational intros like 'Response:'. Just provide the analysis directly.
---
Provided News Text:
`

// BuildPrompt renders the analysis prompt for items and request.
func BuildPrompt(items []model.NewsItem, request string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, it := range items {
		fmt.Fprintf(&b, "Headline: %s\n", it.Headline)
		fmt.Fprintf(&b, "Date: %s\n", it.Timestamp.UTC().Format("2006-01-02"))
		fmt.Fprintf(&b, "Description: %s\n\n", it.Description)
	}
	b.WriteString("\n---\nUser's Specific Request:\n")
	b.WriteString(request)
	b.WriteString("\n---\n")
	return b.String()
}
