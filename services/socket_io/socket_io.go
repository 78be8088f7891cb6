package socket_io

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"Polashi/services/archive"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	"Polashi/services/socket_io/handlers"
	socketio_types "Polashi/services/socket_io/types"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and registers the
// full command surface on every connection.
func (sio *MySocketServer) Start(router *gin.Engine, registry *rooms.Registry,
	redisClient *redis.RedisClient, archiveManager *archive.Manager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and
	// 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.PlayerConnections = make(map[string]*socket.Socket)
	sio.SessionBindings = make(map[string]socketio_types.SessionBinding)

	self := (*socketio_types.SocketServer)(sio)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		log.Printf("[CONNECT] Socket %s connected", client.Id())

		// Handshake session tokens resume retained seats without a
		// reconnectPlayer round-trip.
		handlers.TryResumeSession(registry, redisClient, client, self)

		// Room lifecycle
		client.On("createRoom", handlers.HandleCreateRoom(registry, redisClient, client, self))
		client.On("joinRoom", handlers.HandleJoinRoom(registry, redisClient, client, self))
		client.On("reconnectPlayer", handlers.HandleReconnectPlayer(registry, redisClient, client, self))
		client.On("leaveRoom", handlers.HandleLeaveRoom(registry, redisClient, archiveManager, client, self))
		client.On("closeRoom", handlers.HandleCloseRoom(registry, redisClient, client, self))
		client.On("setRoomLock", handlers.HandleSetRoomLock(registry, redisClient, client, self))
		client.On("kickPlayer", handlers.HandleKickPlayer(registry, redisClient, client, self))

		// Game lifecycle
		client.On("startGame", handlers.HandleStartGame(registry, redisClient, client, self))
		client.On("assignGeneral", handlers.HandleAssignGeneral(registry, redisClient, client, self))
		client.On("resetGame", handlers.HandleResetGame(registry, redisClient, client, self))

		// Missions and voting
		client.On("proposeTeam", handlers.HandleProposeTeam(registry, redisClient, client, self))
		client.On("startVote", handlers.HandleStartVote(registry, redisClient, client, self))
		client.On("startSecretVote", handlers.HandleStartSecretVote(registry, redisClient, client, self))
		client.On("castVote", handlers.HandleCastVote(registry, redisClient, archiveManager, client, self))
		client.On("clearVote", handlers.HandleClearVote(registry, redisClient, client, self))

		// Guptochor
		client.On("investigatePlayer", handlers.HandleInvestigatePlayer(registry, redisClient, client, self))

		// NOTE: retains the seat, only flips it offline
		client.On("disconnecting", handlers.HandleDisconnecting(registry, redisClient, client, self))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range signalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}
