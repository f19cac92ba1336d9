package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Vu1can09/twitch-clone/internal/store"
)

// PartialFailureError reports a half-applied follow toggle: the actor's
// following list was written but the target's followers list was not. The
// coordinator performs no rollback, so callers must re-resolve both users to
// observe actual state rather than trust the toggle outcome.
type PartialFailureError struct {
	ActorID  string
	TargetID string
	Followed bool // state the actor side now records
	Err      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("follow toggle half-applied (actor %s, target %s): %v", e.ActorID, e.TargetID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// FollowCoordinator owns the two-sided follow edge between users.
type FollowCoordinator interface {
	ToggleFollow(ctx context.Context, actorID, targetHandle string) (bool, error)
}

type followCoordinator struct {
	directory Directory
	users     store.Users
	logger    *logrus.Logger
}

func NewFollowCoordinator(directory Directory, users store.Users, logger *logrus.Logger) FollowCoordinator {
	if logger == nil {
		logger = logrus.New()
	}
	return &followCoordinator{
		directory: directory,
		users:     users,
		logger:    logger,
	}
}

// ToggleFollow flips the follow edge from the actor to the target and returns
// true only when both sides committed.
//
// The edge is split across two rows (actor.following, target.followers) and
// the store exposes no multi-row transaction, so the update is two independent
// writes. The actor side goes first: if it fails nothing has changed and the
// call reports failure. If the target side then fails, the edge is left
// half-applied and the call returns a *PartialFailureError without rolling the
// actor side back.
//
// Toggle direction derives solely from the actor's snapshot. When the two
// sides have drifted apart after an earlier partial failure, repeated toggles
// converge the actor side and a successful pass rewrites the target side to
// match. Concurrent toggles on the same pair remain a read-modify-write race
// with last-write-wins semantics; nothing here serializes them.
//
// Self-follow is a silent no-op: (false, nil), no mutation.
//
// Precondition failures (unknown actor, unknown or ambiguous target handle)
// return (false, nil); the error channel carries only store failures.
func (c *followCoordinator) ToggleFollow(ctx context.Context, actorID, targetHandle string) (bool, error) {
	if actorID == targetHandle {
		return false, nil
	}

	actor, err := c.directory.Resolve(ctx, actorID, ByID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAmbiguousMatch) {
			c.logger.WithField("actor_id", actorID).Warnf("toggle follow: resolve actor: %v", err)
			return false, nil
		}
		return false, fmt.Errorf("resolve actor: %w", err)
	}

	target, err := c.directory.Resolve(ctx, targetHandle, ByHandle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAmbiguousMatch) {
			c.logger.WithField("target_handle", targetHandle).Warnf("toggle follow: resolve target: %v", err)
			return false, nil
		}
		return false, fmt.Errorf("resolve target: %w", err)
	}

	// The handle may have resolved back to the actor.
	if actor.UserID == target.UserID {
		return false, nil
	}

	var (
		following = actor.Following
		followers = target.Followers
		followed  bool
	)
	if actor.IsFollowing(target.UserID) {
		following = removeID(following, target.UserID)
		followers = removeID(followers, actor.UserID)
	} else {
		following = append(following, target.UserID)
		followers = append(followers, actor.UserID)
		followed = true
	}

	// Actor side first. A failure here leaves the edge untouched.
	if err := c.users.UpdateFollowing(ctx, actor.UserID, following); err != nil {
		return false, fmt.Errorf("update actor following: %w", err)
	}

	if err := c.users.UpdateFollowers(ctx, target.UserID, followers); err != nil {
		c.logger.WithFields(logrus.Fields{
			"actor_id":  actor.UserID,
			"target_id": target.UserID,
			"followed":  followed,
		}).Errorf("toggle follow: target-side write failed, edge half-applied: %v", err)
		return false, &PartialFailureError{
			ActorID:  actor.UserID,
			TargetID: target.UserID,
			Followed: followed,
			Err:      err,
		}
	}

	return true, nil
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
