package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/middleware"
	"Polashi/services/archive"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
	socketio_utils "Polashi/services/socket_io/utils"
)

// Function to handle room creation. The creator is seated as GameMaster and
// receives a roomJoined payload carrying the room snapshot, their player ID
// and a session token for reload recovery.
func HandleCreateRoom(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed createRoom payload")
			return
		}
		name, err := socketio_utils.GetString(payload, "name")
		if err != nil {
			client.Emit("errorMessage", "A name is required to create a room")
			return
		}

		room, gmID := registry.CreateRoom(name)
		log.Printf("[CREATE] Room %s created by %s (player %s)", room.Code(), name, gmID)

		attachSeat(sio, client, room, gmID)
		emitRoomJoined(client, room, gmID, true)
		SyncRoomDirectory(redisClient, room)
	}
}

// Function to handle joining an existing room by code.
func HandleJoinRoom(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed joinRoom payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		name, err := socketio_utils.GetString(payload, "name")
		if err != nil {
			client.Emit("errorMessage", "A name is required to join a room")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		playerID, gameErr := room.Join(name)
		if gameErr != nil {
			log.Printf("[JOIN-REJECT] %s -> %s: %s", name, room.Code(), gameErr.Message)
			EmitError(client, gameErr)
			return
		}
		log.Printf("[JOIN] %s joined room %s as player %s", name, room.Code(), playerID)

		attachSeat(sio, client, room, playerID)
		emitRoomJoined(client, room, playerID, false)
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle an explicit reconnect from stored credentials. The
// seat was retained across the disconnect; this flips it back online. A
// failed lookup tells the client its stored credentials are stale.
func HandleReconnectPlayer(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed reconnectPlayer payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		playerID, err := socketio_utils.GetString(payload, "playerId")
		if err != nil {
			client.Emit("errorMessage", "A player ID is required")
			return
		}

		ResumeSeat(registry, redisClient, client, sio, roomCode, playerID)
	}
}

// ResumeSeat restores a retained seat for a returning transport. Shared by
// the reconnectPlayer command and the handshake session-token path.
// Idempotent: repeated calls rebind the same seat and never duplicate it.
func ResumeSeat(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer, roomCode string, playerID string) {
	room, gameErr := registry.Lookup(roomCode)
	if gameErr != nil {
		EmitError(client, gameErr)
		return
	}
	if gameErr := room.Reconnect(playerID, string(client.Id())); gameErr != nil {
		EmitError(client, gameErr)
		return
	}
	log.Printf("[RECONNECT] Player %s back online in room %s", playerID, room.Code())

	attachSeat(sio, client, room, playerID)
	emitRoomJoined(client, room, playerID, room.IsGameMaster(playerID))
	BroadcastRoomUpdate(sio, redisClient, room)
}

// Function to handle a player leaving voluntarily. A departing GameMaster
// dissolves the whole room; an emptied room is destroyed. The departure can
// complete a vote whose last missing ballot was the leaver's, so the outcome
// may carry a resolution, including a game-ending one.
func HandleLeaveRoom(registry *rooms.Registry, redisClient *redis.RedisClient,
	archiveManager *archive.Manager, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed leaveRoom payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		playerID, err := socketio_utils.GetString(payload, "playerId")
		if err != nil {
			client.Emit("errorMessage", "A player ID is required")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		outcome, gameErr := room.Leave(playerID)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}

		if outcome.GMLeft {
			log.Printf("[LEAVE] GameMaster left room %s, dissolving", room.Code())
			DissolveRoom(registry, redisClient, sio, room)
			return
		}

		client.Leave(socket.Room(room.Code()))
		sio.RemoveConnection(playerID)
		sio.UnbindSession(string(client.Id()))
		log.Printf("[LEAVE] Player %s left room %s", playerID, room.Code())

		if outcome.Empty {
			registry.Destroy(room.Code())
			DropRoomDirectory(redisClient, room.Code())
			log.Printf("[LEAVE] Room %s emptied out, destroyed", room.Code())
			return
		}
		BroadcastRoomUpdate(sio, redisClient, room)

		if resolution := outcome.Resolution; resolution != nil {
			log.Printf("[VOTE] Room %s %s resolved by departure: %s",
				room.Code(), resolution.Type, resolution.Result)
			if resolution.GameOver {
				log.Printf("[GAME-OVER] Room %s winner: %s", room.Code(), resolution.Winner)
				archiveMatch(archiveManager, room)
			}
		}
	}
}

// Function to handle the GameMaster closing the room for everyone.
func HandleCloseRoom(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed closeRoom payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		requesterID, err := socketio_utils.GetString(payload, "requesterId")
		if err != nil {
			client.Emit("errorMessage", "A requester ID is required")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		if !room.IsGameMaster(requesterID) {
			client.Emit("errorMessage", "Only the Game Master can close the room")
			return
		}
		log.Printf("[CLOSE] Room %s closed by its GameMaster", room.Code())
		DissolveRoom(registry, redisClient, sio, room)
	}
}

// Function to handle the join gate. Locked rooms reject new joins while
// reconnects of retained seats keep working.
func HandleSetRoomLock(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed setRoomLock payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		requesterID, err := socketio_utils.GetString(payload, "requesterId")
		if err != nil {
			client.Emit("errorMessage", "A requester ID is required")
			return
		}
		locked, err := socketio_utils.GetBool(payload, "locked")
		if err != nil {
			client.Emit("errorMessage", "A locked flag is required")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		if gameErr := room.SetLock(requesterID, locked); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[LOCK] Room %s locked=%v", room.Code(), locked)
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle the GameMaster kicking a player before game start. The
// removed client gets a dedicated kicked event so it can show its access
// revoked state instead of silently vanishing from the roster.
func HandleKickPlayer(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed kickPlayer payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		requesterID, err := socketio_utils.GetString(payload, "requesterId")
		if err != nil {
			client.Emit("errorMessage", "A requester ID is required")
			return
		}
		targetID, err := socketio_utils.GetString(payload, "targetPlayerId")
		if err != nil {
			client.Emit("errorMessage", "A target player ID is required")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}

		// Grab the target's connection before the seat disappears.
		targetClient, targetConnected := sio.GetConnection(targetID)

		if gameErr := room.Kick(requesterID, targetID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[KICK] Player %s kicked from room %s", targetID, room.Code())

		if targetConnected {
			targetClient.Emit("kicked", gin.H{})
			targetClient.Leave(socket.Room(room.Code()))
			sio.UnbindSession(string(targetClient.Id()))
		}
		sio.RemoveConnection(targetID)
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// DissolveRoom broadcasts the terminal roomDissolved event and tears the
// room down. No roomUpdated follows: dissolution is the last word.
func DissolveRoom(registry *rooms.Registry, redisClient *redis.RedisClient,
	sio *socketio_types.SocketServer, room *rooms.Room) {
	sio.Sio_server.To(socket.Room(room.Code())).Emit("roomDissolved", gin.H{})

	for _, playerID := range room.PlayerIDs() {
		if client, exists := sio.GetConnection(playerID); exists {
			client.Leave(socket.Room(room.Code()))
			sio.UnbindSession(string(client.Id()))
		}
		sio.RemoveConnection(playerID)
	}
	registry.Destroy(room.Code())
	DropRoomDirectory(redisClient, room.Code())
	log.Printf("[DISSOLVE] Room %s destroyed", room.Code())
}

// attachSeat wires a connection to its seat: socket room membership, the
// unicast connection map, and the socket->seat binding.
func attachSeat(sio *socketio_types.SocketServer, client *socket.Socket,
	room *rooms.Room, playerID string) {
	room.BindSocket(playerID, string(client.Id()))
	sio.AddConnection(playerID, client)
	sio.BindSession(string(client.Id()), room.Code(), playerID)
	client.Join(socket.Room(room.Code()))
}

// emitRoomJoined unicasts the join/reconnect acknowledgement with the
// recipient's redacted snapshot and a session token for reload recovery.
func emitRoomJoined(client *socket.Socket, room *rooms.Room, playerID string, isGameMaster bool) {
	token, err := middleware.GenerateSessionToken(room.Code(), playerID)
	if err != nil {
		log.Printf("[SESSION-ERROR] Error signing session token: %v", err)
	}
	client.Emit("roomJoined", gin.H{
		"roomCode":     room.Code(),
		"room":         room.ViewFor(playerID),
		"playerId":     playerID,
		"role":         "player",
		"isGameMaster": isGameMaster,
		"sessionToken": token,
	})
}
