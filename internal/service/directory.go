package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

// LookupKey selects which identifier a directory lookup resolves by.
type LookupKey string

const (
	// ByID resolves by the stable user id.
	ByID LookupKey = "id"
	// ByHandle resolves by the display handle (user_name).
	ByHandle LookupKey = "handle"
)

// ErrInvalidLookupKey is returned when a caller passes a lookup key outside
// the allowed set.
var ErrInvalidLookupKey = errors.New("invalid lookup key")

// Directory resolves users to their canonical profile records.
type Directory interface {
	Resolve(ctx context.Context, identifier string, by LookupKey) (*domain.User, error)
}

type directory struct {
	users store.Users
}

func NewDirectory(users store.Users) Directory {
	return &directory{users: users}
}

// Resolve looks a user up by id or handle using a case-insensitive substring
// match on the chosen field. A filter matching more than one row fails with
// store.ErrAmbiguousMatch rather than returning an arbitrary row.
func (d *directory) Resolve(ctx context.Context, identifier string, by LookupKey) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", ErrInvalidInput)
	}

	var field store.UserField
	switch by {
	case ByID:
		field = store.FieldUserID
	case ByHandle:
		field = store.FieldUserName
	default:
		return nil, ErrInvalidLookupKey
	}

	return d.users.Find(ctx, field, identifier, store.MatchContains)
}
