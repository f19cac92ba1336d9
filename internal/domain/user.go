package domain

import "time"

// User is the canonical profile record stored in the users table.
//
// Following and Followers hold user ids of other users. The pair is
// redundant by design: an active follow from A to B is recorded both in
// A.Following and in B.Followers, and keeping the two sides consistent is
// the job of the follow coordinator, not the store.
type User struct {
	UserID      string
	UserName    string
	ImageURL    string
	Mail        string
	DateOfBirth string
	Interests   []string
	Following   []string
	Followers   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFollowing reports whether the given user id is present in the user's
// following list.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}
