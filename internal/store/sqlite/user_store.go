package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	user_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	image_url TEXT NOT NULL DEFAULT '',
	mail TEXT NOT NULL DEFAULT '',
	date_of_birth TEXT NOT NULL DEFAULT '',
	interests TEXT NOT NULL DEFAULT '[]',
	following TEXT NOT NULL DEFAULT '[]',
	followers TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) store.Users {
	return &UserStore{db: db}
}

func (s *UserStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createUsersTable); err != nil {
		return &store.StoreError{Op: "init", Table: "users", Err: err}
	}
	return nil
}

func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (user_id, user_name, image_url, mail, date_of_birth, interests, following, followers, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID,
		user.UserName,
		user.ImageURL,
		user.Mail,
		user.DateOfBirth,
		encodeList(user.Interests),
		encodeList(user.Following),
		encodeList(user.Followers),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("user %q: %w", user.UserName, store.ErrAlreadyExists)
		}
		return &store.StoreError{Op: "insert", Table: "users", Err: err}
	}
	return nil
}

// Find filters users by one of the allowed lookup fields. MatchContains is a
// case-insensitive substring match; it reads up to two rows so that a filter
// matching more than one user surfaces ErrAmbiguousMatch instead of silently
// returning an arbitrary row.
func (s *UserStore) Find(ctx context.Context, field store.UserField, value string, mode store.MatchMode) (*domain.User, error) {
	switch field {
	case store.FieldUserID, store.FieldUserName:
	default:
		return nil, &store.StoreError{Op: "find", Table: "users", Err: fmt.Errorf("invalid lookup field %q", field)}
	}

	where := fmt.Sprintf("%s = ?", field)
	if mode == store.MatchContains {
		// LIKE is case-insensitive for ASCII in sqlite, no COLLATE needed.
		where = fmt.Sprintf(`%s LIKE '%%' || ? || '%%' ESCAPE '\'`, field)
		value = escapeLike(value)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
SELECT user_id, user_name, image_url, mail, date_of_birth, interests, following, followers, created_at, updated_at
FROM users
WHERE %s
LIMIT 2`, where),
		value,
	)
	if err != nil {
		return nil, &store.StoreError{Op: "find", Table: "users", Err: err}
	}
	defer rows.Close()

	var matches []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, &store.StoreError{Op: "find", Table: "users", Err: err}
		}
		matches = append(matches, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.StoreError{Op: "find", Table: "users", Err: err}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("user %s %q: %w", field, value, store.ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("user %s %q: %w", field, value, store.ErrAmbiguousMatch)
	}
}

func (s *UserStore) UpdateFollowing(ctx context.Context, userID string, following []string) error {
	return s.updateList(ctx, "following", userID, following)
}

func (s *UserStore) UpdateFollowers(ctx context.Context, userID string, followers []string) error {
	return s.updateList(ctx, "followers", userID, followers)
}

func (s *UserStore) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	return s.updateList(ctx, "interests", userID, interests)
}

func (s *UserStore) updateList(ctx context.Context, column, userID string, values []string) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`
UPDATE users
SET %s = ?, updated_at = ?
WHERE user_id = ?`, column),
		encodeList(values),
		time.Now().UTC(),
		userID,
	)
	if err != nil {
		return &store.StoreError{Op: "update " + column, Table: "users", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &store.StoreError{Op: "update " + column, Table: "users", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("user user_id %q: %w", userID, store.ErrNotFound)
	}
	return nil
}

func scanUser(rows *sql.Rows) (*domain.User, error) {
	var (
		user      domain.User
		interests string
		following string
		followers string
	)
	if err := rows.Scan(
		&user.UserID,
		&user.UserName,
		&user.ImageURL,
		&user.Mail,
		&user.DateOfBirth,
		&interests,
		&following,
		&followers,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	var err error
	if user.Interests, err = decodeList(interests); err != nil {
		return nil, fmt.Errorf("decode interests: %w", err)
	}
	if user.Following, err = decodeList(following); err != nil {
		return nil, fmt.Errorf("decode following: %w", err)
	}
	if user.Followers, err = decodeList(followers); err != nil {
		return nil, fmt.Errorf("decode followers: %w", err)
	}
	return &user, nil
}

// escapeLike neutralizes LIKE metacharacters so an identifier containing
// % or _ filters literally instead of acting as a wildcard.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

// sqlite has no array type; list columns hold JSON text.
func encodeList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	values := []string{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
