package rooms

import (
	"sync"

	"github.com/google/uuid"

	game_constants "Polashi/constants/game"
	"Polashi/models/game"
)

/*
 * Room wraps one RoomState aggregate behind a mutex. Every command for a
 * given room runs under this lock, one at a time, in arrival order. That
 * serialization is what keeps the voting state machine honest (two racing
 * castVote calls cannot both decide they are the resolving ballot).
 *
 * Commands validate first and mutate after, so a rejected command never
 * leaves partial state behind.
 */
type Room struct {
	mutex     sync.Mutex
	broadcast sync.Mutex // serializes snapshot+delivery, see Broadcast
	state     *game.RoomState
}

// Code returns the room's immutable code. No lock needed, it never changes.
func (r *Room) Code() string {
	return r.state.RoomCode
}

// Join seats a new player. Fails when the room is locked or at capacity.
func (r *Room) Join(name string) (string, *GameError) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.state.Locked {
		return "", ErrRoomLocked
	}
	if len(r.state.Players) >= game_constants.MaxPlayersPerRoom {
		return "", ErrRoomFull
	}
	player := r.seatPlayer(name)
	return player.ID, nil
}

// Reconnect restores an existing seat: flips the player back online and
// rebinds the transport identity. Idempotent: any number of calls with a
// valid player ID return the same room and never duplicate the seat.
func (r *Room) Reconnect(playerID string, socketID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	player := r.state.FindPlayer(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}
	player.Online = true
	player.SocketID = socketID
	return nil
}

// BindSocket records the transport identity for a seated player.
func (r *Room) BindSocket(playerID string, socketID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if player := r.state.FindPlayer(playerID); player != nil {
		player.SocketID = socketID
	}
}

// MarkOffline handles a transport-level disconnect: the seat is retained
// indefinitely with online=false. Returns false when no seat matched.
func (r *Room) MarkOffline(playerID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	player := r.state.FindPlayer(playerID)
	if player == nil {
		return false
	}
	player.Online = false
	player.SocketID = ""
	return true
}

// LeaveOutcome tells the caller what the departure implies for the room.
type LeaveOutcome struct {
	Empty      bool            // last seat gone, room should be destroyed
	GMLeft     bool            // the GameMaster left, room must dissolve
	Resolution *VoteResolution // set when the departure completed a running vote
}

// Leave removes the player's seat entirely. A departing GameMaster
// dissolves the room: the GM seat is never transferred. A departure can
// shrink the electorate of a running vote, so the session is reconciled
// here; the ballots already cast may now be the full count.
func (r *Room) Leave(playerID string) (LeaveOutcome, *GameError) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	player := r.state.FindPlayer(playerID)
	if player == nil {
		return LeaveOutcome{}, ErrPlayerNotFound
	}
	if player.IsGameMaster {
		return LeaveOutcome{GMLeft: true}, nil
	}
	r.removePlayer(playerID)
	outcome := LeaveOutcome{Empty: len(r.state.Players) == 0}
	if !outcome.Empty {
		outcome.Resolution = r.reconcileVote()
	}
	return outcome, nil
}

// Kick removes a player on the GameMaster's order. Only valid before the
// game starts; afterwards seats are part of the game state.
func (r *Room) Kick(requesterID string, targetID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	if r.state.GameStarted {
		return invalidState("Cannot kick players after the game has started")
	}
	if requesterID == targetID {
		return invalidState("You cannot kick yourself")
	}
	target := r.state.FindPlayer(targetID)
	if target == nil {
		return ErrPlayerNotFound
	}
	r.removePlayer(targetID)
	return nil
}

// SetLock toggles the join gate. GameMaster only.
func (r *Room) SetLock(requesterID string, locked bool) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	r.state.Locked = locked
	return nil
}

// ViewFor builds the redacted snapshot for one recipient.
func (r *Room) ViewFor(playerID string) *game.RoomView {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.state.ViewFor(playerID)
}

// Views builds one consistent set of per-recipient snapshots under a single
// lock acquisition, so every member observes the same state transition.
func (r *Room) Views() map[string]*game.RoomView {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	views := make(map[string]*game.RoomView, len(r.state.Players))
	for _, p := range r.state.Players {
		views[p.ID] = r.state.ViewFor(p.ID)
	}
	return views
}

// Broadcast snapshots the per-recipient views and hands each one to deliver,
// holding a per-room broadcast lock across snapshot and delivery. Two racing
// broadcasts for the same room therefore cannot reorder on the wire: the
// snapshot is taken inside the critical section, so the later sender always
// delivers the later state and a superseded snapshot is never sent. The lock
// is separate from the command mutex, so delivery never stalls commands.
func (r *Room) Broadcast(deliver func(playerID string, view *game.RoomView)) {
	r.broadcast.Lock()
	defer r.broadcast.Unlock()

	for playerID, view := range r.Views() {
		deliver(playerID, view)
	}
}

// PlayerIDs returns the current seat IDs in join order.
func (r *Room) PlayerIDs() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ids := make([]string, 0, len(r.state.Players))
	for _, p := range r.state.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// PlayerName resolves a seat ID to its display name.
func (r *Room) PlayerName(playerID string) string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if player := r.state.FindPlayer(playerID); player != nil {
		return player.Name
	}
	return ""
}

// IsGameMaster reports whether the player holds the GM seat.
func (r *Room) IsGameMaster(playerID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	player := r.state.FindPlayer(playerID)
	return player != nil && player.IsGameMaster
}

// Summary is the redacted room digest kept in the redis directory and
// served by the REST preview endpoint.
type Summary struct {
	RoomCode    string `json:"roomCode"`
	PlayerCount int    `json:"playerCount"`
	Locked      bool   `json:"locked"`
	GameStarted bool   `json:"gameStarted"`
	GameStatus  string `json:"gameStatus"`
}

// Summarize builds the directory digest for this room.
func (r *Room) Summarize() Summary {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return Summary{
		RoomCode:    r.state.RoomCode,
		PlayerCount: len(r.state.Players),
		Locked:      r.state.Locked,
		GameStarted: r.state.GameStarted,
		GameStatus:  r.state.GameStatus,
	}
}

// ---- internals (caller holds the lock) ----

func (r *Room) seatPlayer(name string) *game.Player {
	player := &game.Player{
		ID:     uuid.NewString(),
		Name:   name,
		Online: true,
	}
	r.state.Players = append(r.state.Players, player)
	return player
}

func (r *Room) removePlayer(playerID string) {
	players := r.state.Players[:0]
	for _, p := range r.state.Players {
		if p.ID != playerID {
			players = append(players, p)
		}
	}
	r.state.Players = players

	// Scrub references the departed seat may hold elsewhere in the state.
	delete(r.state.SecretIntel, playerID)
	if r.state.Voting != nil {
		delete(r.state.Voting.Votes, playerID)
	}
	team := r.state.ProposedTeam[:0]
	for _, id := range r.state.ProposedTeam {
		if id != playerID {
			team = append(team, id)
		}
	}
	r.state.ProposedTeam = team
}

func (r *Room) requireGameMaster(requesterID string) *GameError {
	player := r.state.FindPlayer(requesterID)
	if player == nil {
		return ErrPlayerNotFound
	}
	if !player.IsGameMaster {
		return unauthorized("Only the Game Master can do that")
	}
	return nil
}
