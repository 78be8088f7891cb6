package rooms

import (
	"fmt"
	"math/rand"

	game_constants "Polashi/constants/game"
	"Polashi/models/game"
)

// StartGame deals hidden roles, computes per-player intel, seeds the
// Guptochor ability and flips the room to ACTIVE. GameMaster only, once.
func (r *Room) StartGame(requesterID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	if r.state.GameStarted {
		return invalidState("Game has already started")
	}
	if len(r.state.Players) < game_constants.MinPlayersToStart {
		return invalidState("Need at least 2 players to start")
	}

	r.dealCharacters()
	r.computeSecretIntel()
	r.seedGuptochor()

	r.state.GameStarted = true
	r.state.GameStatus = game_constants.StatusActive
	r.state.CurrentRound = 1
	r.state.ScoreGreen = 0
	r.state.ScoreRed = 0
	r.state.RoundHistory = []string{}
	r.state.ProposedTeam = nil
	r.state.Voting = nil
	r.state.Winner = ""
	return nil
}

// AssignGeneral rotates the General flag to the next seat in join order
// (the first seat when none is set). GameMaster only, game must be active.
// Returns the chosen player's name for the reveal animation broadcast,
// which goes out before the state snapshot so clients can stage the
// two-phase reveal.
func (r *Room) AssignGeneral(requesterID string) (string, *GameError) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return "", err
	}
	if !r.state.GameStarted {
		return "", invalidState("Game has not started yet")
	}
	if r.state.GameStatus != game_constants.StatusActive {
		return "", invalidState("Game is not active")
	}

	next := 0
	if current := r.state.General(); current != nil {
		for i, p := range r.state.Players {
			if p.ID == current.ID {
				next = (i + 1) % len(r.state.Players)
				break
			}
		}
		current.IsGeneral = false
	}
	chosen := r.state.Players[next]
	chosen.IsGeneral = true
	r.state.TurnIndex = next
	return chosen.Name, nil
}

// ResetGame clears roles, rounds, votes and the spy ability and returns the
// room to WAITING. GameMaster only. The UI confirms before sending this;
// the server just executes it.
func (r *Room) ResetGame(requesterID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}

	for _, p := range r.state.Players {
		p.Character = nil
		p.IsGeneral = false
	}
	r.state.GameStarted = false
	r.state.GameStatus = game_constants.StatusWaiting
	r.state.Winner = ""
	r.state.CurrentRound = 1
	r.state.ScoreGreen = 0
	r.state.ScoreRed = 0
	r.state.RoundHistory = []string{}
	r.state.ProposedTeam = nil
	r.state.Voting = nil
	r.state.TurnIndex = 0
	r.state.GuptochorID = ""
	r.state.NextGuptochorID = ""
	r.state.GuptochorUsed = false
	r.state.SecretIntel = map[string][]string{}
	return nil
}

// dealCharacters assigns roles without replacement: EIC conspirators first
// (count scales with table size), Nawab loyalists for the rest. Where the
// pool allows, a player is not handed the character they held last game.
func (r *Room) dealCharacters() {
	playerCount := len(r.state.Players)
	eicCount := game_constants.EICCountForPlayers(playerCount)

	eic := shuffledPool(game.EICCharacters)
	nawab := shuffledPool(game.NawabCharacters)

	order := rand.Perm(playerCount)
	for n, idx := range order {
		player := r.state.Players[idx]
		var character game.Character
		if n < eicCount {
			character, eic = drawAvoiding(eic, player.LastCharacterID)
		} else {
			character, nawab = drawAvoiding(nawab, player.LastCharacterID)
		}
		assigned := character
		player.Character = &assigned
		lastID := assigned.ID
		player.LastCharacterID = &lastID
	}
}

// computeSecretIntel builds each player's hint list. Conspirators learn
// each other by name; loyalists only learn how many conspirators exist.
// A player's intel never names anyone on the opposite side.
func (r *Room) computeSecretIntel() {
	intel := map[string][]string{}
	var eicNames []string
	eicCount := 0
	for _, p := range r.state.Players {
		if p.Character != nil && p.Character.Team == game_constants.TeamEIC {
			eicNames = append(eicNames, p.Name)
			eicCount++
		}
	}
	for _, p := range r.state.Players {
		if p.Character == nil {
			continue
		}
		var lines []string
		if p.Character.Team == game_constants.TeamEIC {
			for _, name := range eicNames {
				if name != p.Name {
					lines = append(lines, fmt.Sprintf("%s marches with the Company", name))
				}
			}
			if len(lines) == 0 {
				lines = append(lines, "You conspire alone")
			}
		} else {
			lines = append(lines, fmt.Sprintf("%d conspirators walk among you", eicCount))
		}
		intel[p.ID] = lines
	}
	r.state.SecretIntel = intel
}

// seedGuptochor hands the one-shot investigation ability to a random Nawab
// loyalist, and lines up another as next in case the round rotates.
func (r *Room) seedGuptochor() {
	var loyalists []*game.Player
	for _, p := range r.state.Players {
		if p.Character != nil && p.Character.Team == game_constants.TeamNawabs {
			loyalists = append(loyalists, p)
		}
	}
	r.state.GuptochorID = ""
	r.state.NextGuptochorID = ""
	r.state.GuptochorUsed = false
	if len(loyalists) == 0 {
		return
	}
	rand.Shuffle(len(loyalists), func(i, j int) {
		loyalists[i], loyalists[j] = loyalists[j], loyalists[i]
	})
	r.state.GuptochorID = loyalists[0].ID
	if len(loyalists) > 1 {
		r.state.NextGuptochorID = loyalists[1].ID
	}
	if holder := r.state.FindPlayer(r.state.GuptochorID); holder != nil {
		r.state.SecretIntel[holder.ID] = append(r.state.SecretIntel[holder.ID],
			"You carry the Guptochor's seal")
	}
}

// rotateGuptochor promotes the lined-up holder at round advance and draws a
// fresh next from the remaining loyalists. The used flag is global to the
// game: rotation never re-arms a spent ability.
func (r *Room) rotateGuptochor() {
	if r.state.NextGuptochorID == "" {
		return
	}
	previous := r.state.GuptochorID
	r.state.GuptochorID = r.state.NextGuptochorID
	r.state.NextGuptochorID = ""

	var candidates []*game.Player
	for _, p := range r.state.Players {
		if p.Character == nil || p.Character.Team != game_constants.TeamNawabs {
			continue
		}
		if p.ID == r.state.GuptochorID || p.ID == previous {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) > 0 {
		r.state.NextGuptochorID = candidates[rand.Intn(len(candidates))].ID
	}
}

func shuffledPool(pool []game.Character) []game.Character {
	out := append([]game.Character{}, pool...)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// drawAvoiding pops the first character whose ID differs from avoid,
// falling back to the head when the pool leaves no choice.
func drawAvoiding(pool []game.Character, avoid *int) (game.Character, []game.Character) {
	for i, c := range pool {
		if avoid == nil || c.ID != *avoid {
			return c, append(pool[:i:i], pool[i+1:]...)
		}
	}
	return pool[0], pool[1:]
}
