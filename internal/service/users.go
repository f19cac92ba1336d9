package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

// ErrUserAlreadyExists is returned when onboarding collides with an existing
// user id or handle.
var ErrUserAlreadyExists = errors.New("user already exists")

// CreateUserParams carries the profile fields captured at onboarding. UserID
// normally comes from the external identity provider; when empty a fresh uuid
// is assigned.
type CreateUserParams struct {
	UserID      string
	UserName    string
	ImageURL    string
	Mail        string
	DateOfBirth string
}

// Users covers user lifecycle operations outside the follow edge: onboarding
// and profile interest updates.
type Users interface {
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)
	SetInterests(ctx context.Context, userID string, interests []string) (*domain.User, error)
}

type users struct {
	store store.Users
}

func NewUsers(userStore store.Users) Users {
	return &users{store: userStore}
}

// Create inserts a new user with empty following, followers and interests.
func (s *users) Create(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	userName := strings.TrimSpace(params.UserName)
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}

	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		userID = uuid.NewString()
	}

	user := &domain.User{
		UserID:      userID,
		UserName:    userName,
		ImageURL:    params.ImageURL,
		Mail:        params.Mail,
		DateOfBirth: params.DateOfBirth,
		Interests:   []string{},
		Following:   []string{},
		Followers:   []string{},
	}

	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// SetInterests replaces the user's interest tags and returns the refreshed
// record.
func (s *users) SetInterests(ctx context.Context, userID string, interests []string) (*domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if interests == nil {
		interests = []string{}
	}

	if err := s.store.UpdateInterests(ctx, userID, interests); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, store.FieldUserID, userID, store.MatchExact)
}
