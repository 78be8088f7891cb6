package handlers

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/services/redis"
	"Polashi/services/rooms"
	socketio_types "Polashi/services/socket_io/types"
	socketio_utils "Polashi/services/socket_io/utils"
)

// Function to handle the Guptochor spending the one-shot investigation.
// The fan-out is a deliberate 3-way visibility split, not a broadcast:
//   - the requester alone receives the target's alliance (guptochorResult)
//   - the target gets a pointed private warning that they were investigated
//   - everyone else gets a public notice that an inquiry happened
// Nobody but the requester ever learns the result.
func HandleInvestigatePlayer(registry *rooms.Registry, redisClient *redis.RedisClient,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_utils.ParsePayload(args)
		if err != nil {
			client.Emit("errorMessage", "Malformed investigatePlayer payload")
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
		result, gameErr := room.Investigate(requesterID, targetID)
		if gameErr != nil {
			EmitError(client, gameErr)
			return
		}
		log.Printf("[GUPTOCHOR] Room %s: %s investigated %s", room.Code(),
			result.RequesterName, result.TargetName)

		// Private result, requester only.
		client.Emit("guptochorResult", gin.H{
			"targetName": result.TargetName,
			"alliance":   result.Alliance,
		})

		// Pointed warning for the target, public notice for the rest.
		targetMessage := "The Guptochor's gaze fell upon you. Your allegiance has been reported."
		publicMessage := fmt.Sprintf("The Guptochor has made an inquiry about %s.", result.TargetName)
		for _, playerID := range room.PlayerIDs() {
			if playerID == result.RequesterID {
				continue
			}
			member, connected := sio.GetConnection(playerID)
			if !connected {
				continue
			}
			message := publicMessage
			notificationType := "public"
			if playerID == result.TargetID {
				message = targetMessage
				notificationType = "private"
			}
			member.Emit("notification", gin.H{
				"message":     message,
				"type":        notificationType,
				"targetId":    result.TargetID,
				"requesterId": result.RequesterID,
			})
		}

		// guptochorUsed flipped; everyone sees the seal is spent.
		BroadcastRoomUpdate(sio, redisClient, room)
	}
}
