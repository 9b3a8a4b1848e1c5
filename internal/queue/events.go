// Package queue defines the domain events exchanged over RabbitMQ together
// with the publisher and the background consumer that handle them.
package queue

// Queue names. Each event type travels on its own durable queue bound to
// the default exchange.
const (
	UserRegisteredQueue    = "user.registered"
	SuggestionCreatedQueue = "suggestion.created"
)

// Suggestion sources carried in SuggestionCreatedEvent.Source.
const (
	SourceManual   = "manual"
	SourceAnalysis = "analysis"
)

// UserRegisteredEvent is published after a successful signup.
type UserRegisteredEvent struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	CompanyName  string `json:"company_name"`
	RegisteredAt string `json:"registered_at"`
}

// SuggestionCreatedEvent is published whenever a suggestion is stored,
// either submitted by a user or produced by news analysis.
type SuggestionCreatedEvent struct {
	SuggestionID string `json:"suggestion_id"`
	UserID       string `json:"user_id"`
	Headline     string `json:"headline"`
	Source       string `json:"source"`
	IsPublic     bool   `json:"is_public"`
	CreatedAt    string `json:"created_at"`
}
