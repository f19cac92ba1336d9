package domain

import "time"

// LiveStream is a live-stream resource owned by a single user.
//
// UserName denormalizes the owner's display handle; it is not a foreign key
// enforced by the store. Nothing guarantees a user has at most one active
// stream, so callers must not assume exclusivity.
type LiveStream struct {
	ID              int64
	Name            string
	Categories      []string
	UserName        string
	ProfileImageURL string
	CreatedAt       time.Time
}
