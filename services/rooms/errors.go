package rooms

// GameError is a rejected command. It is reported only to the initiating
// client (via the errorMessage event) and never mutates shared room state.
type GameError struct {
	Code    string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Error codes
const (
	CodeRoomNotFound  = "RoomNotFound"
	CodeRoomLocked    = "RoomLocked"
	CodeRoomFull      = "RoomFull"
	CodeUnauthorized  = "Unauthorized"
	CodeInvalidState  = "InvalidState"
	CodeDuplicateVote = "DuplicateVote"
)

var (
	ErrRoomNotFound   = &GameError{Code: CodeRoomNotFound, Message: "Room not found"}
	ErrPlayerNotFound = &GameError{Code: CodeRoomNotFound, Message: "Player not found in this room"}
	ErrRoomLocked     = &GameError{Code: CodeRoomLocked, Message: "Room is locked"}
	ErrRoomFull       = &GameError{Code: CodeRoomFull, Message: "Room is full"}
	ErrDuplicateVote  = &GameError{Code: CodeDuplicateVote, Message: "You have already voted"}
)

func unauthorized(message string) *GameError {
	return &GameError{Code: CodeUnauthorized, Message: message}
}

func invalidState(message string) *GameError {
	return &GameError{Code: CodeInvalidState, Message: message}
}
