package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// GameStats summarizes one title's history.
type GameStats struct {
	GameID     string
	GamesCount int // solo runs with a saved score
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Matches    int
	LastPlayed time.Time
}

const statsQuery = `
	WITH ids AS (
		SELECT game_id FROM scores UNION SELECT game_id FROM versus_matches
	)
	SELECT ids.game_id,
		(SELECT COUNT(*) FROM scores s WHERE s.game_id = ids.game_id),
		(SELECT COALESCE(MAX(score), 0) FROM scores s WHERE s.game_id = ids.game_id),
		(SELECT COALESCE(AVG(score), 0) FROM scores s WHERE s.game_id = ids.game_id),
		(SELECT COALESCE(SUM(score), 0) FROM scores s WHERE s.game_id = ids.game_id),
		(SELECT COUNT(*) FROM versus_matches v WHERE v.game_id = ids.game_id),
		(SELECT MAX(created_at) FROM scores s WHERE s.game_id = ids.game_id),
		(SELECT MAX(created_at) FROM versus_matches v WHERE v.game_id = ids.game_id)
	FROM ids`

func scanStats(rows *sql.Rows) (*GameStats, error) {
	st := &GameStats{}
	var soloAt, versusAt any
	err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore,
		&st.TotalScore, &st.Matches, &soloAt, &versusAt)
	st.LastPlayed = parseTime(soloAt)
	if t := parseTime(versusAt); t.After(st.LastPlayed) {
		st.LastPlayed = t
	}
	return st, err
}

// GetGameStats summarizes one title. A title with no history returns zero
// stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	rows, err := s.db.Query(statsQuery+` WHERE ids.game_id = ?`, gameID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats for %s: %w", gameID, err)
	}
	all, err := collect(rows, scanStats)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return &GameStats{GameID: gameID}, nil
	}
	return all[0], nil
}

// GetAllGamesStats summarizes every title with a saved score or result,
// keyed by game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsQuery)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	all, err := collect(rows, scanStats)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*GameStats, len(all))
	for _, st := range all {
		out[st.GameID] = st
	}
	return out, nil
}
