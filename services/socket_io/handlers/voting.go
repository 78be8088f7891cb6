package handlers

import (
	"log"

	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/services/archive"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
	socketio_utils "Polashi/services/socket_io/utils"
)

// Function to handle the General nominating a mission team. The payload
// carries no requester field, so the caller is resolved from the seat its
// socket is bound to.
func HandleProposeTeam(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed proposeTeam payload")
			return
		}
		roomCode, err := socketio_utils.GetString(payload, "roomCode")
		if err != nil {
			client.Emit("errorMessage", "A room code is required")
			return
		}
		playerIDs, err := socketio_utils.GetStringSlice(payload, "playerIds")
		if err != nil {
			client.Emit("errorMessage", "A list of player IDs is required")
			return
		}

		binding, bound := sio.GetSession(string(client.Id()))
		if !bound {
			client.Emit("errorMessage", "You are not seated in a room")
			return
		}
		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		if gameErr := room.ProposeTeam(binding.PlayerID, playerIDs); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[TEAM] Room %s team proposal: %d nominated", room.Code(), len(playerIDs))
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle the GameMaster opening a team-approval vote.
func HandleStartVote(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		if gameErr := room.StartVote(requesterID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[VOTE] Team-approval vote opened in room %s", room.Code())
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle the GameMaster opening the secret mission vote after
// an approved team.
func HandleStartSecretVote(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		if gameErr := room.StartSecretVote(requesterID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[VOTE] Mission vote opened in room %s", room.Code())
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// Function to handle one ballot. The ballot that completes the session
// resolves it inside the same room command; a resolved mission that ends
// the game is handed to the match archive.
func HandleCastVote(registry *rooms.Registry, redisClient *redis.RedisClient,
	archiveManager *archive.Manager, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed castVote payload")
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
		choice, err := socketio_utils.GetString(payload, "choice")
		if err != nil {
			client.Emit("errorMessage", "A choice is required")
			return
		}

		room, gameErr := registry.Lookup(roomCode)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		resolution, gameErr := room.CastVote(playerID, choice)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		BroadcastRoomUpdate(sio, redisClient, room)

		if resolution == nil {
			return
		}
		log.Printf("[VOTE] Room %s %s resolved: %s", room.Code(), resolution.Type, resolution.Result)
		if resolution.GameOver {
			log.Printf("[GAME-OVER] Room %s winner: %s", room.Code(), resolution.Winner)
			archiveMatch(archiveManager, room)
		}
	}
}

// Function to handle the GameMaster discarding the current vote record,
// whether mid-vote or a displayed result.
func HandleClearVote(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, requesterID, ok := requesterCommand(registry, client, args)
		if !ok {
			return
		}
		if gameErr := room.ClearVote(requesterID); gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[VOTE] Vote record cleared in room %s", room.Code())
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}

// archiveMatch persists a finished game. Best-effort: the broadcast already
// went out, an archive failure only loses the history row.
func archiveMatch(archiveManager *archive.Manager, room *rooms.Room) {
	if !archiveManager.Enabled() {
		return
	}
	result, over := room.MatchResult()
	if !over {
		return
	}
	if err := archiveManager.SaveMatch(result); err != nil {
		log.Printf("[ARCHIVE-ERROR] Room %s: %v", room.Code(), err)
	}
}
