package rooms

// InvestigationResult carries everything the handler needs for the 3-way
// fan-out: the private alliance result for the requester, and the names for
// the target warning and the public notice.
type InvestigationResult struct {
	RequesterID   string
	RequesterName string
	TargetID      string
	TargetName    string
	Alliance      string // the target's team, for the requester's eyes only
}

// Investigate spends the Guptochor's single-use ability on a target. The
// requester must hold the ability, the ability must be unspent, the game
// active, and the target someone else. The used flag is monotonic: once
// true it only resets with an explicit game reset.
func (r *Room) Investigate(requesterID string, targetID string) (*InvestigationResult, *GameError) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.state.GameStarted {
		return nil, invalidState("Game has not started yet")
	}
	if r.state.GuptochorID != requesterID {
		return nil, unauthorized("You do not hold the Guptochor's seal")
	}
	if r.state.GuptochorUsed {
		return nil, invalidState("The Guptochor's seal has already been spent")
	}
	if requesterID == targetID {
		return nil, invalidState("You cannot investigate yourself")
	}

	requester := r.state.FindPlayer(requesterID)
	target := r.state.FindPlayer(targetID)
	if requester == nil || target == nil {
		return nil, ErrPlayerNotFound
	}
	if target.Character == nil {
		return nil, invalidState("That player has no role to uncover")
	}

	r.state.GuptochorUsed = true
	return &InvestigationResult{
		RequesterID:   requester.ID,
		RequesterName: requester.Name,
		TargetID:      target.ID,
		TargetName:    target.Name,
		Alliance:      target.Character.Team,
	}, nil
}
