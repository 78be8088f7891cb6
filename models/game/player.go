package game

// Player is one seat in a room. The record survives disconnects: `Online`
// flips to false but the seat, role and votes are retained until the player
// explicitly leaves or is kicked.
type Player struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Online          bool       `json:"online"`
	SocketID        string     `json:"socketId,omitempty"` // transport identity, changes on reconnect
	IsGameMaster    bool       `json:"isGameMaster"`
	IsGeneral       bool       `json:"isGeneral"`
	Character       *Character `json:"character,omitempty"`
	LastCharacterID *int       `json:"lastCharacterId,omitempty"`
}

// PlayerView is the per-recipient projection of a Player. Identical to
// Player except that Character is only populated on the recipient's own row.
type PlayerView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Online          bool       `json:"online"`
	IsGameMaster    bool       `json:"isGameMaster"`
	IsGeneral       bool       `json:"isGeneral"`
	Character       *Character `json:"character"`
	LastCharacterID *int       `json:"lastCharacterId,omitempty"`
}
