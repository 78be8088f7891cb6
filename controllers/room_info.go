package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	redis_models "Polashi/models/redis"
	"Polashi/services/rooms"
)

// RoomDirectory is the read side of the redis room directory.
type RoomDirectory interface {
	GetRoomSummary(roomCode string) (*redis_models.RoomSummary, error)
}

// RoomInfoController serves the join-screen preview: a redacted digest of
// a live room, enough for "does this code exist, is it open, how full".
type RoomInfoController struct {
	Directory RoomDirectory
}

// GetRoomInfo handles GET /rooms/:code.
func (rc *RoomInfoController) GetRoomInfo(c *gin.Context) {
	if rc.Directory == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Room directory is not available"})
		return
	}

	summary, err := rc.Directory.GetRoomSummary(rooms.CanonicalCode(c.Param("code")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_code":    summary.RoomCode,
		"player_count": summary.PlayerCount,
		"locked":       summary.Locked,
		"game_started": summary.GameStarted,
		"game_status":  summary.GameStatus,
	})
}
