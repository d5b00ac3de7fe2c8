package livematch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const liveMatchSchema = `
CREATE TABLE IF NOT EXISTS live_matches (
	match_id      TEXT PRIMARY KEY,
	tournament_id TEXT NOT NULL,
	data          TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_live_matches_tournament ON live_matches (tournament_id);
`

// SQLiteStore is the offline backend: the same documents the cloud store
// keeps, as JSON rows in a local database. Venues without connectivity run
// the whole engine against this.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(db *sqlx.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(liveMatchSchema); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

type liveMatchRow struct {
	MatchID      string    `db:"match_id"`
	TournamentID string    `db:"tournament_id"`
	Data         string    `db:"data"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (s *SQLiteStore) Get(ctx context.Context, tournamentID, matchID string) (*LiveMatch, error) {
	var row liveMatchRow
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM live_matches WHERE match_id = ? AND tournament_id = ?", matchID, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var match LiveMatch
	if err := json.Unmarshal([]byte(row.Data), &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *SQLiteStore) Save(ctx context.Context, tournamentID string, match *LiveMatch) error {
	match.TournamentID = tournamentID
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO live_matches (match_id, tournament_id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			tournament_id = excluded.tournament_id,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		match.ID, tournamentID, string(data), time.Now().UTC())
	return err
}

func (s *SQLiteStore) List(ctx context.Context, tournamentID string) ([]*LiveMatch, error) {
	var rows []liveMatchRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM live_matches WHERE tournament_id = ? ORDER BY updated_at", tournamentID)
	if err != nil {
		return nil, err
	}

	matches := make([]*LiveMatch, 0, len(rows))
	for _, row := range rows {
		var match LiveMatch
		if err := json.Unmarshal([]byte(row.Data), &match); err != nil {
			return nil, err
		}
		matches = append(matches, &match)
	}
	return matches, nil
}
