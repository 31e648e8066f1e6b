package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one saved solo score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

const scoreColumns = `id, game_id, score, created_at`

func scanScore(rows *sql.Rows) (ScoreEntry, error) {
	var e ScoreEntry
	var at any
	err := rows.Scan(&e.ID, &e.GameID, &e.Score, &at)
	e.CreatedAt = parseTime(at)
	return e, err
}

// SaveScore records a solo score and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO scores (game_id, score) VALUES (?, ?)`, gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return res.LastInsertId()
}

// TopScores returns the best limit scores for a title, highest first. A
// non-positive limit means ten.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(`WHERE game_id = ? ORDER BY score DESC, id LIMIT ?`, gameID, limit)
}

// AllScores returns every score for a title, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(`WHERE game_id = ? ORDER BY score DESC, id`, gameID)
}

func (s *Store) queryScores(where string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(`SELECT `+scoreColumns+` FROM scores `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return collect(rows, scanScore)
}

// HighScore returns a title's best score, zero when it has none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = ?`, gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return best, nil
}

// ClearScores forgets a title's scores and versus results.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", gameID, err)
	}
	defer tx.Rollback()
	for _, table := range []string{"scores", "versus_matches"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE game_id = ?`, gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
