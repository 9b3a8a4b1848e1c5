package model

import "time"

// Suggestion is an actionable recommendation owned by a single user. It is
// private until the owner publishes it and can be archived instead of deleted.
type Suggestion struct {
	ID          string    `bson:"_id" json:"id"`
	Headline    string    `bson:"headline" json:"headline"`
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	UserID      string    `bson:"userId" json:"userId"`
	IsPublic    bool      `bson:"isPublic" json:"isPublic"`
	IsArchived  bool      `bson:"isArchived" json:"isArchived"`
}

// Favorite links a user to a suggestion they marked as favorite.
type Favorite struct {
	ID           string `bson:"_id"`
	UserID       string `bson:"userId"`
	SuggestionID string `bson:"suggestionId"`
}
