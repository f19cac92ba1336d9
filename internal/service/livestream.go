package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

// LiveStreamRegistry manages the lifecycle of live-stream resources. Streams
// are created on stream start and deleted on stream end; there is no update,
// changing a stream means delete then create.
type LiveStreamRegistry interface {
	List(ctx context.Context) ([]domain.LiveStream, error)
	Create(ctx context.Context, name string, categories []string, userName, profileImageURL string) (*domain.LiveStream, error)
	Delete(ctx context.Context, userName string) (int64, error)
}

type liveStreamRegistry struct {
	streams store.LiveStreams
}

func NewLiveStreamRegistry(streams store.LiveStreams) LiveStreamRegistry {
	return &liveStreamRegistry{streams: streams}
}

func (r *liveStreamRegistry) List(ctx context.Context) ([]domain.LiveStream, error) {
	return r.streams.List(ctx)
}

func (r *liveStreamRegistry) Create(ctx context.Context, name string, categories []string, userName, profileImageURL string) (*domain.LiveStream, error) {
	name = strings.TrimSpace(name)
	userName = strings.TrimSpace(userName)
	if name == "" {
		return nil, fmt.Errorf("%w: stream name is required", ErrInvalidInput)
	}
	if userName == "" {
		return nil, fmt.Errorf("%w: owner user name is required", ErrInvalidInput)
	}

	stream := &domain.LiveStream{
		Name:            name,
		Categories:      categories,
		UserName:        userName,
		ProfileImageURL: profileImageURL,
	}
	if err := r.streams.Insert(ctx, stream); err != nil {
		return nil, err
	}
	return stream, nil
}

// Delete removes every stream owned by userName and reports how many rows
// went. Owners with several rows lose all of them in one call.
func (r *liveStreamRegistry) Delete(ctx context.Context, userName string) (int64, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return 0, fmt.Errorf("%w: owner user name is required", ErrInvalidInput)
	}
	return r.streams.DeleteByOwner(ctx, userName)
}
