package handlers

import (
	"log"

	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/middleware"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
)

// Function to handle socket.io client disconnections. The seat is retained
// with online=false (there is no eviction timeout), so the player can
// reconnect into the same game whenever their transport comes back.
func HandleDisconnecting(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		socketID := string(client.Id())
		binding, bound := sio.GetSession(socketID)
		if !bound {
			return
		}
		log.Printf("[DISCONNECT] Player %s lost transport in room %s",
			binding.PlayerID, binding.RoomCode)

		sio.UnbindSession(socketID)
		sio.RemoveConnection(binding.PlayerID)

		room, gameErr := registry.Lookup(binding.RoomCode)
		if gameErr != nil {
			return
		}
		if room.MarkOffline(binding.PlayerID) {
			BroadcastRoomUpdate(sio, redisClient, room)
		}
	}
}

// TryResumeSession restores a seat straight from the socket.io handshake
// when the client presented a session token, sparing the reconnectPlayer
// round-trip. An invalid or stale token is ignored; the client falls back
// to its stored-credentials reconnect flow.
func TryResumeSession(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) {
	token, present := middleware.SessionTokenFromHandshake(client.Handshake().Auth)
	if !present {
		return
	}
	roomCode, playerID, err := middleware.DecodeSessionToken(token)
	if err != nil {
		log.Printf("[SESSION] Rejected handshake session token: %v", err)
		return
	}
	log.Printf("[SESSION] Handshake resume for player %s in room %s", playerID, roomCode)
	ResumeSeat(registry, redisClient, client, sio, roomCode, playerID)
}
