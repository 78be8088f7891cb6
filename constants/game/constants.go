package game_constants

// Room limits
const MaxPlayersPerRoom = 10
const MinPlayersToStart = 2
const RoomCodeLength = 4

// Best-of-five: first side to take three rounds controls Bengal.
const TotalRounds = 5
const RoundsToWin = 3

// Team names as the client renders them.
const TeamNawabs = "Nawabs"
const TeamEIC = "East India Company (EIC)"

// Round history / score colors. Green is the Nawab side.
const ColorGreen = "Green"
const ColorRed = "Red"

// Winner strings. The client matches on the "(Green)" suffix.
const WinnerGreen = "Nawabs (Green)"
const WinnerRed = "East India Company (Red)"

// Game lifecycle states
const (
	StatusWaiting = "WAITING"
	StatusActive  = "ACTIVE"
	StatusOver    = "OVER"
)

// Voting session types
const (
	VoteTeamApproval   = "teamApproval"
	VoteMissionOutcome = "missionOutcome"
)

// Ballot choices and resolved results
const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
	ResultYes = "Yes"
	ResultNo  = "No"
)

// MissionRequirement is one row of the five-round mission table.
type MissionRequirement struct {
	Players       int `json:"players"`
	FailsRequired int `json:"failsRequired"`
}

// MissionRequirements is the fixed per-round table. Round 4 is the tricky
// one: the Company needs two sabotage ballots there instead of one.
var MissionRequirements = [TotalRounds]MissionRequirement{
	{Players: 3, FailsRequired: 1}, // R1
	{Players: 4, FailsRequired: 1}, // R2
	{Players: 4, FailsRequired: 1}, // R3
	{Players: 5, FailsRequired: 2}, // R4
	{Players: 5, FailsRequired: 1}, // R5
}

// RequirementForRound returns the mission table row for a 1-based round
// number, clamping past round 5 so an out-of-range read cannot panic.
func RequirementForRound(round int) MissionRequirement {
	if round < 1 {
		round = 1
	}
	if round > TotalRounds {
		round = TotalRounds
	}
	return MissionRequirements[round-1]
}

// EICCountForPlayers returns how many Company conspirators a game of the
// given size gets. Follows the usual hidden-role ratios, capped by the pool.
func EICCountForPlayers(playerCount int) int {
	switch {
	case playerCount <= 4:
		return 1
	case playerCount <= 6:
		return 2
	case playerCount <= 9:
		return 3
	default:
		return 4
	}
}
