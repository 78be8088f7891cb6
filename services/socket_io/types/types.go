package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SessionBinding ties a transport connection to the seat it is playing.
type SessionBinding struct {
	RoomCode string
	PlayerID string
}

// SocketServer is a struct that contains the socket.io server, a map of
// player connections for unicast delivery, and the socket->seat bindings
// used to resolve who a disconnecting transport belonged to.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track playerID -> socket connections
	PlayerConnections map[string]*socket.Socket
	// Map to track socketID -> seat binding
	SessionBindings map[string]SessionBinding
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		PlayerConnections: make(map[string]*socket.Socket),
		SessionBindings:   make(map[string]SessionBinding),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerID] = client
}

func (s *SocketServer) RemoveConnection(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.PlayerConnections, playerID)
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.PlayerConnections[playerID]
	return client, exists
}

// BindSession records which seat a socket is playing. A socket plays at
// most one seat; rebinding replaces the previous seat.
func (s *SocketServer) BindSession(socketID string, roomCode string, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.SessionBindings[socketID] = SessionBinding{RoomCode: roomCode, PlayerID: playerID}
}

func (s *SocketServer) GetSession(socketID string) (SessionBinding, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	binding, exists := s.SessionBindings[socketID]
	return binding, exists
}

func (s *SocketServer) UnbindSession(socketID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.SessionBindings, socketID)
}
