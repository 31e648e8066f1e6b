package storage

import (
	"time"

	"github.com/vovakirdan/couch-arcade/internal/core"
)

// Record saves the final state of a match: versus titles as a match
// result, solo titles as a high score when the score is positive. It
// returns the match ID, empty when nothing was saved as a match.
func (s *Store) Record(gameID, mode string, st core.GameState, d time.Duration) (string, error) {
	if st.Versus {
		winner := ""
		if st.Winner == core.Player1 || st.Winner == core.Player2 {
			winner = st.Winner.String()
		}
		return s.SaveMatch(MatchResult{
			GameID:   gameID,
			Mode:     mode,
			Score1:   st.Scores[core.Player1],
			Score2:   st.Scores[core.Player2],
			Winner:   winner,
			Duration: d,
		})
	}
	if st.Score <= 0 {
		return "", nil
	}
	_, err := s.SaveScore(gameID, st.Score)
	return "", err
}
