package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Vu1can09/twitch-clone/internal/domain"
	"github.com/Vu1can09/twitch-clone/internal/store"
)

const createLiveStreamsTable = `
CREATE TABLE IF NOT EXISTS livestreams (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	categories TEXT NOT NULL DEFAULT '[]',
	user_name TEXT NOT NULL,
	profile_image_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type LiveStreamStore struct {
	db *sql.DB
}

func NewLiveStreamStore(db *sql.DB) store.LiveStreams {
	return &LiveStreamStore{db: db}
}

func (s *LiveStreamStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createLiveStreamsTable); err != nil {
		return &store.StoreError{Op: "init", Table: "livestreams", Err: err}
	}
	return nil
}

func (s *LiveStreamStore) Insert(ctx context.Context, stream *domain.LiveStream) error {
	stream.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
INSERT INTO livestreams (name, categories, user_name, profile_image_url, created_at)
VALUES (?, ?, ?, ?, ?)`,
		stream.Name,
		encodeList(stream.Categories),
		stream.UserName,
		stream.ProfileImageURL,
		stream.CreatedAt,
	)
	if err != nil {
		return &store.StoreError{Op: "insert", Table: "livestreams", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return &store.StoreError{Op: "insert", Table: "livestreams", Err: err}
	}
	stream.ID = id
	return nil
}

func (s *LiveStreamStore) List(ctx context.Context) ([]domain.LiveStream, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, categories, user_name, profile_image_url, created_at
FROM livestreams
ORDER BY id`)
	if err != nil {
		return nil, &store.StoreError{Op: "list", Table: "livestreams", Err: err}
	}
	defer rows.Close()

	var streams []domain.LiveStream
	for rows.Next() {
		var (
			stream     domain.LiveStream
			categories string
		)
		if err := rows.Scan(
			&stream.ID,
			&stream.Name,
			&categories,
			&stream.UserName,
			&stream.ProfileImageURL,
			&stream.CreatedAt,
		); err != nil {
			return nil, &store.StoreError{Op: "list", Table: "livestreams", Err: fmt.Errorf("scan livestream: %w", err)}
		}
		if stream.Categories, err = decodeList(categories); err != nil {
			return nil, &store.StoreError{Op: "list", Table: "livestreams", Err: fmt.Errorf("decode categories: %w", err)}
		}
		streams = append(streams, stream)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.StoreError{Op: "list", Table: "livestreams", Err: err}
	}
	return streams, nil
}

// DeleteByOwner removes every livestream owned by userName. Matching several
// rows removes all of them; the returned count tells the caller how many went.
func (s *LiveStreamStore) DeleteByOwner(ctx context.Context, userName string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM livestreams WHERE user_name = ?`, userName)
	if err != nil {
		return 0, &store.StoreError{Op: "delete", Table: "livestreams", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &store.StoreError{Op: "delete", Table: "livestreams", Err: err}
	}
	return affected, nil
}
