package rooms

import (
	"math/rand"
	"strings"
	"sync"

	game_constants "Polashi/constants/game"
	"Polashi/models/game"
)

// Uppercase only: codes are typed by hand on phones.
const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

/*
 * Registry owns every live room. It is the only shared structure between
 * rooms; all game state lives behind each Room's own lock, so registry
 * operations never contend with in-room commands.
 */
type Registry struct {
	mutex sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom generates a unique code, creates the room and seats the
// creator as its GameMaster. Returns the room and the creator's player ID.
func (reg *Registry) CreateRoom(gmName string) (*Room, string) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	code := reg.generateCode()
	room := newRoom(code)
	gm := room.seatPlayer(gmName)
	gm.IsGameMaster = true
	reg.rooms[code] = room
	return room, gm.ID
}

// Lookup resolves a room code. Input is case-insensitive; codes are
// canonicalized to uppercase.
func (reg *Registry) Lookup(roomCode string) (*Room, *GameError) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	room, exists := reg.rooms[CanonicalCode(roomCode)]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Destroy removes the room from the registry. Callers are responsible for
// the roomDissolved broadcast before teardown.
func (reg *Registry) Destroy(roomCode string) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()
	delete(reg.rooms, CanonicalCode(roomCode))
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return len(reg.rooms)
}

// CanonicalCode uppercases a handwritten room code.
func CanonicalCode(roomCode string) string {
	return strings.ToUpper(strings.TrimSpace(roomCode))
}

// generateCode draws codes until one is free among live rooms. The space
// (36^4) is large relative to any realistic concurrent room count, so this
// loop terminates in practice on the first draw. Caller holds the lock.
func (reg *Registry) generateCode() string {
	for {
		b := make([]byte, game_constants.RoomCodeLength)
		for i := range b {
			b[i] = codeCharset[rand.Intn(len(codeCharset))]
		}
		code := string(b)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}

// newRoom builds an empty Room around a fresh aggregate.
func newRoom(code string) *Room {
	return &Room{
		state: game.NewRoomState(code),
	}
}
