// Package store defines the client contract for the remote relational store
// backing the users and livestreams tables. All operations are single-row or
// single-statement; no multi-statement transaction primitive is exposed, and
// higher layers are designed around that constraint.
package store

// MatchMode selects how a Find filter compares the stored value.
type MatchMode int

const (
	// MatchExact compares the stored value for equality.
	MatchExact MatchMode = iota
	// MatchContains performs a case-insensitive substring match.
	MatchContains
)

// UserField is the closed set of user columns a lookup may filter on. Using
// an enumerated type instead of an arbitrary column name rules out
// invalid-field errors at runtime.
type UserField string

const (
	FieldUserID   UserField = "user_id"
	FieldUserName UserField = "user_name"
)
