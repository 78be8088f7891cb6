package rooms

import game_constants "Polashi/constants/game"

// MatchPlayer is one roster entry of a finished match, with the role
// finally revealed. The game is over, there is nothing left to hide.
type MatchPlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Team      string `json:"team"`
}

// MatchResult is the digest of a finished game handed to the archive.
type MatchResult struct {
	RoomCode     string
	Winner       string
	ScoreGreen   int
	ScoreRed     int
	RoundsPlayed int
	RoundHistory []string
	Players      []MatchPlayer
}

// MatchResult snapshots the finished game. Returns false while the game is
// still running or never started.
func (r *Room) MatchResult() (*MatchResult, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.state.GameStatus != game_constants.StatusOver {
		return nil, false
	}
	result := &MatchResult{
		RoomCode:     r.state.RoomCode,
		Winner:       r.state.Winner,
		ScoreGreen:   r.state.ScoreGreen,
		ScoreRed:     r.state.ScoreRed,
		RoundsPlayed: len(r.state.RoundHistory),
		RoundHistory: append([]string{}, r.state.RoundHistory...),
	}
	for _, p := range r.state.Players {
		mp := MatchPlayer{ID: p.ID, Name: p.Name}
		if p.Character != nil {
			mp.Character = p.Character.Name
			mp.Team = p.Character.Team
		}
		result.Players = append(result.Players, mp)
	}
	return result, true
}
