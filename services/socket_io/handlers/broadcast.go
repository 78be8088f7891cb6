package handlers

import (
	"log"
	"time"

	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/models/game"
	redis_models "Polashi/models/redis"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
)

// BroadcastRoomUpdate pushes the canonical room snapshot to every member.
// Because each player's payload must hide everyone else's character, this
// cannot be a plain socket.io room broadcast: the per-recipient views are
// built in one consistent snapshot and unicast to each connected member.
// Room.Broadcast serializes snapshot and delivery per room, so members never
// receive an older snapshot after a newer one when commands race. Offline
// seats simply miss the update; they get a fresh snapshot in roomJoined when
// they reconnect.
func BroadcastRoomUpdate(sio *socketio_types.SocketServer, redisClient *redis.RedisClient, room *rooms.Room) {
	room.Broadcast(func(playerID string, view *game.RoomView) {
		client, exists := sio.GetConnection(playerID)
		if !exists {
			return
		}
		client.Emit("roomUpdated", view)
	})
	SyncRoomDirectory(redisClient, room)
}

// SyncRoomDirectory refreshes the room's redis directory entry. Directory
// writes are best-effort: a redis failure is logged and the game goes on.
func SyncRoomDirectory(redisClient *redis.RedisClient, room *rooms.Room) {
	if redisClient == nil {
		return
	}
	summary := room.Summarize()
	entry := &redis_models.RoomSummary{
		RoomCode:    summary.RoomCode,
		PlayerCount: summary.PlayerCount,
		Locked:      summary.Locked,
		GameStarted: summary.GameStarted,
		GameStatus:  summary.GameStatus,
		UpdatedAt:   time.Now().Unix(),
	}
	if err := redisClient.SaveRoomSummary(entry); err != nil {
		log.Printf("[DIRECTORY-ERROR] Error syncing room %s: %v", summary.RoomCode, err)
	}
}

// DropRoomDirectory removes a dissolved room's directory entry.
func DropRoomDirectory(redisClient *redis.RedisClient, roomCode string) {
	if redisClient == nil {
		return
	}
	if err := redisClient.DeleteRoomSummary(roomCode); err != nil {
		log.Printf("[DIRECTORY-ERROR] Error dropping room %s: %v", roomCode, err)
	}
}

// EmitError reports a rejected command to the failing caller only. The
// client listens for a plain string on errorMessage.
func EmitError(client *socket.Socket, err *rooms.GameError) {
	client.Emit("errorMessage", err.Message)
}
