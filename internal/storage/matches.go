package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchResult is one finished versus match.
type MatchResult struct {
	ID int64
	// MatchID is a UUID, assigned on save when empty.
	MatchID string
	GameID  string
	Mode    string
	Score1  int
	Score2  int
	// Winner names the winning side, empty for a draw.
	Winner    string
	Duration  time.Duration
	CreatedAt time.Time
}

const matchColumns = `id, match_id, game_id, mode, score1, score2, winner, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchResult, error) {
	var m MatchResult
	var ms int64
	var at any
	err := row.Scan(&m.ID, &m.MatchID, &m.GameID, &m.Mode, &m.Score1, &m.Score2, &m.Winner, &ms, &at)
	m.Duration = time.Duration(ms) * time.Millisecond
	m.CreatedAt = parseTime(at)
	return m, err
}

// SaveMatch records a versus result and returns its match ID.
func (s *Store) SaveMatch(r MatchResult) (string, error) {
	if r.MatchID == "" {
		r.MatchID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO versus_matches (match_id, game_id, mode, score1, score2, winner, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.GameID, r.Mode, r.Score1, r.Score2, r.Winner, r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match %s: %w", r.MatchID, err)
	}
	return r.MatchID, nil
}

// MatchByID looks up one result. An unknown ID returns nil and no error.
func (s *Store) MatchByID(matchID string) (*MatchResult, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM versus_matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches returns the latest versus results, newest first. An empty
// gameID covers every title; a non-positive limit means twenty.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+matchColumns+` FROM versus_matches
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return collect(rows, func(r *sql.Rows) (MatchResult, error) { return scanMatch(r) })
}
