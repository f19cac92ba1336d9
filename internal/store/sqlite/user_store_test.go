package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUserStore(t *testing.T) store.Users {
	t.Helper()
	users := NewUserStore(newTestDB(t))
	require.NoError(t, users.Init(context.Background()))
	return users
}

func insertUser(t *testing.T, users store.Users, id, name string) {
	t.Helper()
	require.NoError(t, users.Insert(context.Background(), &domain.User{
		UserID:   id,
		UserName: name,
	}))
}

func TestUserStore_Find(t *testing.T) {
	ctx := context.Background()

	t.Run("exact match by user_id", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "user_2abc", "alice")

		user, err := users.Find(ctx, store.FieldUserID, "user_2abc", store.MatchExact)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.UserName)
		assert.Empty(t, user.Following)
		assert.Empty(t, user.Followers)
		assert.Empty(t, user.Interests)
	})

	t.Run("case-insensitive substring by user_name", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "user_2abc", "AliceStreams")

		user, err := users.Find(ctx, store.FieldUserName, "alicestr", store.MatchContains)
		require.NoError(t, err)
		assert.Equal(t, "user_2abc", user.UserID)
	})

	t.Run("zero rows is ErrNotFound", func(t *testing.T) {
		users := newTestUserStore(t)

		_, err := users.Find(ctx, store.FieldUserName, "nobody", store.MatchContains)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("two rows is ErrAmbiguousMatch", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "bob")
		insertUser(t, users, "u2", "bobby")

		_, err := users.Find(ctx, store.FieldUserName, "bob", store.MatchContains)
		assert.ErrorIs(t, err, store.ErrAmbiguousMatch)
	})

	t.Run("LIKE metacharacters filter literally", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "mr_bob")
		insertUser(t, users, "u2", "mrxbob")

		// An unescaped _ would match both rows and trip the ambiguity guard.
		user, err := users.Find(ctx, store.FieldUserName, "r_b", store.MatchContains)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)

		_, err = users.Find(ctx, store.FieldUserName, "%", store.MatchContains)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid lookup field is rejected", func(t *testing.T) {
		users := newTestUserStore(t)

		_, err := users.Find(ctx, store.UserField("mail"), "x", store.MatchExact)
		require.Error(t, err)
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestUserStore_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate handle is ErrAlreadyExists", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "alice")

		err := users.Insert(ctx, &domain.User{UserID: "u2", UserName: "alice"})
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("handle uniqueness is case-insensitive", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "alice")

		err := users.Insert(ctx, &domain.User{UserID: "u2", UserName: "ALICE"})
		assert.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUserStore_UpdateLists(t *testing.T) {
	ctx := context.Background()

	t.Run("following and followers round trip", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "alice")

		require.NoError(t, users.UpdateFollowing(ctx, "u1", []string{"u2", "u3"}))
		require.NoError(t, users.UpdateFollowers(ctx, "u1", []string{"u4"}))

		user, err := users.Find(ctx, store.FieldUserID, "u1", store.MatchExact)
		require.NoError(t, err)
		assert.Equal(t, []string{"u2", "u3"}, user.Following)
		assert.Equal(t, []string{"u4"}, user.Followers)
	})

	t.Run("interests replace wholesale", func(t *testing.T) {
		users := newTestUserStore(t)
		insertUser(t, users, "u1", "alice")

		require.NoError(t, users.UpdateInterests(ctx, "u1", []string{"gaming", "music"}))
		require.NoError(t, users.UpdateInterests(ctx, "u1", []string{"art"}))

		user, err := users.Find(ctx, store.FieldUserID, "u1", store.MatchExact)
		require.NoError(t, err)
		assert.Equal(t, []string{"art"}, user.Interests)
	})

	t.Run("unknown user id is ErrNotFound", func(t *testing.T) {
		users := newTestUserStore(t)

		err := users.UpdateFollowing(ctx, "missing", []string{"u2"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
