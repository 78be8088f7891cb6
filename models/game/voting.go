package game

// VotingState is the at-most-one active/resolved vote record of a room.
// Votes is write-once per player: a second ballot from the same ID is a no-op.
type VotingState struct {
	Active bool              `json:"active"`
	Type   string            `json:"type"`   // teamApproval | missionOutcome
	Votes  map[string]string `json:"votes"`  // playerId -> "yes" | "no"
	Result string            `json:"result"` // "" while unresolved, then "Yes" | "No"
}

// VotingView is the broadcast shape of VotingState: same fields, with the
// unresolved result carried as null the way the client types it.
type VotingView struct {
	Active bool              `json:"active"`
	Type   string            `json:"type"`
	Votes  map[string]string `json:"votes"`
	Result *string           `json:"result"`
}

// View converts the record to its wire shape.
func (v *VotingState) View() *VotingView {
	if v == nil {
		return nil
	}
	view := &VotingView{
		Active: v.Active,
		Type:   v.Type,
		Votes:  make(map[string]string, len(v.Votes)),
	}
	for playerID, choice := range v.Votes {
		view.Votes[playerID] = choice
	}
	if v.Result != "" {
		result := v.Result
		view.Result = &result
	}
	return view
}
