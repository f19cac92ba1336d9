package store

import (
	"context"

	"github.com/Vu1can09/twitch-clone/internal/domain"
)

// LiveStreams exposes persistence operations for LiveStream records.
//
// DeleteByOwner removes every row whose user_name matches and reports how
// many were removed; owners with several rows lose all of them in one call.
type LiveStreams interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, stream *domain.LiveStream) error
	List(ctx context.Context) ([]domain.LiveStream, error)
	DeleteByOwner(ctx context.Context, userName string) (int64, error)
}
