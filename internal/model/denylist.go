package model

import "time"

// DenylistEntry marks a signed session token as invalidated before its
// natural expiry. Lookups match Token byte for byte; entries are never
// updated and only disappear if the optional TTL index is enabled.
type DenylistEntry struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	Expiry    time.Time `bson:"expiry"`
	CreatedAt time.Time `bson:"createdAt"`
}
