package model

import "time"

// NewsItem is a piece of submitted news used as input for AI analysis.
type NewsItem struct {
	ID          string    `bson:"_id" json:"id"`
	Headline    string    `bson:"headline" json:"headline"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Description string    `bson:"description" json:"description"`
}
