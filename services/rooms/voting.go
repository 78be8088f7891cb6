package rooms

import (
	game_constants "Polashi/constants/game"
	"Polashi/models/game"
)

// VoteResolution reports a vote session that just resolved, so the handler
// can archive a finished match and log the outcome.
type VoteResolution struct {
	Type     string // teamApproval | missionOutcome
	Result   string // "Yes" | "No"
	GameOver bool
	Winner   string
}

// ProposeTeam replaces the proposed mission team. Only the current General
// may nominate; each call fully replaces the previous set.
func (r *Room) ProposeTeam(requesterID string, playerIDs []string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	requester := r.state.FindPlayer(requesterID)
	if requester == nil {
		return ErrPlayerNotFound
	}
	if !requester.IsGeneral {
		return unauthorized("Only the General can propose a team")
	}
	if !r.state.GameStarted || r.state.GameStatus != game_constants.StatusActive {
		return invalidState("Game is not active")
	}
	if r.state.Voting != nil && r.state.Voting.Active {
		return invalidState("Cannot change the team while a vote is running")
	}

	team := make([]string, 0, len(playerIDs))
	seen := map[string]bool{}
	for _, id := range playerIDs {
		if r.state.FindPlayer(id) == nil {
			return invalidState("Proposed team contains an unknown player")
		}
		if !seen[id] {
			seen[id] = true
			team = append(team, id)
		}
	}
	r.state.ProposedTeam = team
	return nil
}

// StartVote opens a team-approval session covering every seat in the room.
// GameMaster only. Any prior voting record is superseded.
func (r *Room) StartVote(requesterID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	if !r.state.GameStarted {
		return invalidState("Game has not started yet")
	}
	if len(r.state.ProposedTeam) == 0 {
		return invalidState("No team has been proposed")
	}

	r.state.Voting = &game.VotingState{
		Active: true,
		Type:   game_constants.VoteTeamApproval,
		Votes:  map[string]string{},
	}
	return nil
}

// StartSecretVote opens the mission-outcome session for the proposed team.
// Requires an approved team of exactly the round's required size.
func (r *Room) StartSecretVote(requesterID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	if !r.state.GameStarted {
		return invalidState("Game has not started yet")
	}
	voting := r.state.Voting
	if voting == nil || voting.Type != game_constants.VoteTeamApproval ||
		voting.Active || voting.Result != game_constants.ResultYes {
		return invalidState("The team has not been approved yet")
	}
	required := game_constants.RequirementForRound(r.state.CurrentRound).Players
	if len(r.state.ProposedTeam) != required {
		return invalidState("Proposed team does not match the round's required size")
	}

	r.state.Voting = &game.VotingState{
		Active: true,
		Type:   game_constants.VoteMissionOutcome,
		Votes:  map[string]string{},
	}
	return nil
}

// CastVote records one ballot. Write-once per player per session; a second
// ballot is rejected without touching the tally. The ballot that completes
// the session resolves it in the same critical section.
func (r *Room) CastVote(playerID string, choice string) (*VoteResolution, *GameError) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	voting := r.state.Voting
	if voting == nil || !voting.Active {
		return nil, invalidState("No vote is currently active")
	}
	if choice != game_constants.ChoiceYes && choice != game_constants.ChoiceNo {
		return nil, invalidState("Vote must be yes or no")
	}
	if r.state.FindPlayer(playerID) == nil {
		return nil, ErrPlayerNotFound
	}
	if voting.Type == game_constants.VoteMissionOutcome && !r.state.OnTeam(playerID) {
		return nil, unauthorized("Only the mission team votes on the outcome")
	}
	if _, voted := voting.Votes[playerID]; voted {
		return nil, ErrDuplicateVote
	}

	voting.Votes[playerID] = choice

	eligible := len(r.state.Players)
	if voting.Type == game_constants.VoteMissionOutcome {
		eligible = len(r.state.ProposedTeam)
	}
	if len(voting.Votes) < eligible {
		return nil, nil
	}
	return r.resolveVote(), nil
}

// ClearVote discards the current voting record, whether in progress or a
// displayed result. GameMaster only.
func (r *Room) ClearVote(requesterID string) *GameError {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.requireGameMaster(requesterID); err != nil {
		return err
	}
	r.state.Voting = nil
	return nil
}

// reconcileVote re-checks a running session after a seat removal shrank the
// electorate. The departed ballot is already scrubbed; the ballots still on
// record may now be the full count, in which case the session resolves here
// instead of waiting for a ballot that can never arrive. A mission session
// whose team fell below the round's required size is void: the General has
// to field a full team again. Caller holds the lock.
func (r *Room) reconcileVote() *VoteResolution {
	voting := r.state.Voting
	if voting == nil || !voting.Active {
		return nil
	}

	eligible := len(r.state.Players)
	if voting.Type == game_constants.VoteMissionOutcome {
		required := game_constants.RequirementForRound(r.state.CurrentRound).Players
		if len(r.state.ProposedTeam) < required {
			r.state.Voting = nil
			return nil
		}
		eligible = len(r.state.ProposedTeam)
	}
	if eligible == 0 || len(voting.Votes) < eligible {
		return nil
	}
	return r.resolveVote()
}

// resolveVote closes the session and applies its consequences. Caller
// holds the lock.
//
// Team approval passes on a strict majority of yes ballots: ties reject.
// A mission fails when the sabotage count reaches the round's failsRequired
// (two in round four, one everywhere else).
func (r *Room) resolveVote() *VoteResolution {
	voting := r.state.Voting
	yes, no := 0, 0
	for _, choice := range voting.Votes {
		if choice == game_constants.ChoiceYes {
			yes++
		} else {
			no++
		}
	}

	voting.Active = false
	resolution := &VoteResolution{Type: voting.Type}

	if voting.Type == game_constants.VoteTeamApproval {
		if yes > no {
			voting.Result = game_constants.ResultYes
		} else {
			voting.Result = game_constants.ResultNo
		}
		resolution.Result = voting.Result
		return resolution
	}

	// Mission outcome
	failsRequired := game_constants.RequirementForRound(r.state.CurrentRound).FailsRequired
	if no >= failsRequired {
		voting.Result = game_constants.ResultNo
	} else {
		voting.Result = game_constants.ResultYes
	}
	resolution.Result = voting.Result
	r.applyMissionOutcome(voting.Result)
	resolution.GameOver = r.state.GameStatus == game_constants.StatusOver
	resolution.Winner = r.state.Winner
	return resolution
}

// applyMissionOutcome scores the round, advances it, and re-derives the
// game status. Runs exactly once per resolved mission vote. Caller holds
// the lock.
func (r *Room) applyMissionOutcome(result string) {
	if result == game_constants.ResultYes {
		r.state.ScoreGreen++
		r.state.RoundHistory = append(r.state.RoundHistory, game_constants.ColorGreen)
	} else {
		r.state.ScoreRed++
		r.state.RoundHistory = append(r.state.RoundHistory, game_constants.ColorRed)
	}
	r.state.ProposedTeam = nil

	switch {
	case r.state.ScoreGreen >= game_constants.RoundsToWin:
		r.state.GameStatus = game_constants.StatusOver
		r.state.Winner = game_constants.WinnerGreen
	case r.state.ScoreRed >= game_constants.RoundsToWin:
		r.state.GameStatus = game_constants.StatusOver
		r.state.Winner = game_constants.WinnerRed
	default:
		r.state.CurrentRound++
		r.rotateGuptochor()
	}
}
