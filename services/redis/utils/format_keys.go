package utils

import "fmt"

// FormatRoomSummaryKey builds the directory key for one room.
// Key format: "room_summary:{code}"
func FormatRoomSummaryKey(roomCode string) string {
	return fmt.Sprintf("room_summary:%s", roomCode)
}
