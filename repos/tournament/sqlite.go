package tournament

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const tournamentSchema = `
CREATE TABLE IF NOT EXISTS tournaments (
	slug TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tournament_matches (
	match_id        TEXT PRIMARY KEY,
	tournament_slug TEXT NOT NULL,
	data            TEXT NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tournament_matches_slug ON tournament_matches (tournament_slug);
`

// SQLiteStore is the offline canonical store, JSON documents in local tables.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(db *sqlx.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(tournamentSchema); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, slug string) (*Tournament, error) {
	var data string
	err := s.db.GetContext(ctx, &data, "SELECT data FROM tournaments WHERE slug = ?", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var t Tournament
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Put writes the whole tournament document, used by import tooling and tests.
func (s *SQLiteStore) Put(ctx context.Context, t *Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tournaments (slug, data) VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET data = excluded.data`,
		t.Slug, string(data))
	return err
}

func (s *SQLiteStore) GetMatch(ctx context.Context, slug, matchID string) (*Match, error) {
	var data string
	err := s.db.GetContext(ctx, &data,
		"SELECT data FROM tournament_matches WHERE match_id = ? AND tournament_slug = ?", matchID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}

	var match Match
	if err := json.Unmarshal([]byte(data), &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// UpdateMatch merges the set fields of the update into the stored record,
// creating the record when none exists. Mirrors the partial-update semantics
// of the cloud store.
func (s *SQLiteStore) UpdateMatch(ctx context.Context, slug, matchID string, match *Match) error {
	existing, err := s.GetMatch(ctx, slug, matchID)
	if err != nil && !errors.Is(err, ErrMatchNotFound) {
		return err
	}

	record := match
	if existing != nil {
		mergeMatch(existing, match)
		record = existing
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tournament_matches (match_id, tournament_slug, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			tournament_slug = excluded.tournament_slug,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		matchID, slug, string(data), time.Now().UTC())
	return err
}
