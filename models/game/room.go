package game

import game_constants "Polashi/constants/game"

/*
 * RoomState is the root aggregate of one game session. All mutation happens
 * under the owning services/rooms.Room lock; this package only holds the
 * data shape and the per-recipient view projection.
 */
type RoomState struct {
	RoomCode    string
	Players     []*Player // join order; turn and General rotation follow it
	TurnIndex   int       // index of the current General in Players
	Locked      bool
	GameStarted bool
	GameStatus  string // WAITING | ACTIVE | OVER
	Winner      string

	CurrentRound int // 1-based into the mission table
	ScoreGreen   int
	ScoreRed     int
	RoundHistory []string // "Green" | "Red" per resolved round

	ProposedTeam []string // player IDs nominated by the General
	Voting       *VotingState

	GuptochorID     string
	NextGuptochorID string
	GuptochorUsed   bool

	// per-player intel lines, computed at startGame, keyed by player ID
	SecretIntel map[string][]string
}

// NewRoomState returns a fresh WAITING room with the given code.
func NewRoomState(roomCode string) *RoomState {
	return &RoomState{
		RoomCode:     roomCode,
		Players:      []*Player{},
		GameStatus:   game_constants.StatusWaiting,
		CurrentRound: 1,
		RoundHistory: []string{},
		SecretIntel:  map[string][]string{},
	}
}

// FindPlayer returns the player with the given ID, or nil.
func (s *RoomState) FindPlayer(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// GameMaster returns the room's GM. Every room has exactly one for as long
// as it exists.
func (s *RoomState) GameMaster() *Player {
	for _, p := range s.Players {
		if p.IsGameMaster {
			return p
		}
	}
	return nil
}

// General returns the current General, or nil when none is assigned.
func (s *RoomState) General() *Player {
	for _, p := range s.Players {
		if p.IsGeneral {
			return p
		}
	}
	return nil
}

// OnTeam reports whether the player is part of the proposed mission team.
func (s *RoomState) OnTeam(playerID string) bool {
	for _, id := range s.ProposedTeam {
		if id == playerID {
			return true
		}
	}
	return false
}

// RoomView is the wire shape of a room snapshot, projected for one
// recipient. Field names match the client's Room type exactly.
type RoomView struct {
	RoomCode    string        `json:"roomCode"`
	Players     []*PlayerView `json:"players"`
	TurnIndex   int           `json:"turnIndex"`
	Locked      bool          `json:"locked"`
	GameStarted bool          `json:"gameStarted"`
	GameStatus  string        `json:"gameStatus"`
	Winner      string        `json:"winner,omitempty"`

	CurrentRound int      `json:"currentRound"`
	ScoreGreen   int      `json:"scoreGreen"`
	ScoreRed     int      `json:"scoreRed"`
	RoundHistory []string `json:"roundHistory"`

	ProposedTeam []string    `json:"proposedTeam"`
	Voting       *VotingView `json:"voting"`

	SecretIntel []string `json:"secretIntel,omitempty"`

	GuptochorID     *string `json:"guptochorId"`
	NextGuptochorID *string `json:"nextGuptochorId"`
	GuptochorUsed   bool    `json:"guptochorUsed"`
}

// ViewFor projects the room for one recipient. Only the recipient's own
// character and intel survive the projection; every other player's role is
// stripped, so the client never holds a secret it would have to scrub.
func (s *RoomState) ViewFor(recipientID string) *RoomView {
	view := &RoomView{
		RoomCode:     s.RoomCode,
		Players:      make([]*PlayerView, 0, len(s.Players)),
		TurnIndex:    s.TurnIndex,
		Locked:       s.Locked,
		GameStarted:  s.GameStarted,
		GameStatus:   s.GameStatus,
		Winner:       s.Winner,
		CurrentRound: s.CurrentRound,
		ScoreGreen:   s.ScoreGreen,
		ScoreRed:     s.ScoreRed,
		RoundHistory: append([]string{}, s.RoundHistory...),
		ProposedTeam: append([]string{}, s.ProposedTeam...),
		Voting:       s.Voting.View(),
	}
	view.GuptochorUsed = s.GuptochorUsed
	if s.GuptochorID != "" {
		id := s.GuptochorID
		view.GuptochorID = &id
	}
	if s.NextGuptochorID != "" {
		id := s.NextGuptochorID
		view.NextGuptochorID = &id
	}
	if intel, ok := s.SecretIntel[recipientID]; ok {
		view.SecretIntel = append([]string{}, intel...)
	}
	for _, p := range s.Players {
		pv := &PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			Online:          p.Online,
			IsGameMaster:    p.IsGameMaster,
			IsGeneral:       p.IsGeneral,
			LastCharacterID: p.LastCharacterID,
		}
		if p.ID == recipientID && p.Character != nil {
			character := *p.Character
			pv.Character = &character
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
