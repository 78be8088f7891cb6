package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
	socketio_utils "Polashi/services/socket_io/utils"
)

// requesterCommand parses the common {roomCode, requesterId} payload shape
// and resolves the room, reporting failures to the caller.
func requesterCommand(registry *rooms.Registry, client *socket.Socket,
	args []interface{}) (*rooms.Room, string, bool) {
	payload, err := socketio_utils.ParsePayload(args)
	if err != nil {
		client.Emit("errorMessage", "Malformed payload")
		return nil, "", false
	}
	roomCode, err := socketio_utils.GetString(payload, "roomCode")
	if err != nil {
		client.Emit("errorMessage", "A room code is required")
		return nil, "", false
	}
	requesterID, err := socketio_utils.GetString(payload, "requesterId")
	if err != nil {
		client.Emit("errorMessage", "A requester ID is required")
		return nil, "", false
	}
	room, gameErr := registry.Lookup(roomCode)
	if gameErr != nil {
		EmitError(client, gameErr)
		return nil, "", false
	}
	return room, requesterID, true
}

// Function to handle game start: roles are dealt, intel computed and the
// Guptochor seeded, all in one atomic room command.
func HandleStartGame(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		if gameErr := room.StartGame(requesterID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[START] Game started in room %s", room.Code())
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle General assignment. Two-phase protocol: the ephemeral
// reveal announcement goes out first so every client can stage the
// synchronized animation, then the authoritative snapshot with the flag
// lands via roomUpdated. Any delay between the two is the UI's business.
func HandleAssignGeneral(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		generalName, gameErr := room.AssignGeneral(requesterID)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[GENERAL] %s is now General of room %s", generalName, room.Code())

		sio.Sio_server.To(socket.Room(room.Code())).Emit("triggerGeneralAnimation", gin.H{
			"name": generalName,
		})
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle a full game reset back to the WAITING lobby.
func HandleResetGame(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		if gameErr := room.ResetGame(requesterID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[RESET] Room %s reset to waiting", room.Code())
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}
