package redis

// RoomSummary is the redacted room digest kept in the directory. It backs
// the REST join-screen preview and nothing else: the authoritative state
// never leaves the in-memory aggregate.
type RoomSummary struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	Locked      bool   `json:"locked"`
	GameStarted bool   `json:"game_started"`
	GameStatus  string `json:"game_status"`
	UpdatedAt   int64  `json:"updated_at"` // Unix timestamp
}
