package store

import (
	"context"

	"github.com/Vu1can09/twitch-clone/internal/domain"
)

// Users exposes persistence operations for User records.
//
// Find with MatchContains must fail with ErrAmbiguousMatch when the filter
// resolves to more than one row. Updates key on the exact user_id and replace
// the named column wholesale; there is no conditional or multi-row update.
type Users interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, user *domain.User) error
	Find(ctx context.Context, field UserField, value string, mode MatchMode) (*domain.User, error)
	UpdateFollowing(ctx context.Context, userID string, following []string) error
	UpdateFollowers(ctx context.Context, userID string, followers []string) error
	UpdateInterests(ctx context.Context, userID string, interests []string) error
}
