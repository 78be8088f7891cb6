package rooms

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	game_constants "Polashi/constants/game"
)

// makeRoom seats a GM plus extra players and returns the room with all IDs
// in join order (GM first).
func makeRoom(t *testing.T, extraPlayers int) (*Room, []string) {
	t.Helper()
	registry := NewRegistry()
	room, gmID := registry.CreateRoom("gm")
	ids := []string{gmID}
	for i := 0; i < extraPlayers; i++ {
		id, err := room.Join(fmt.Sprintf("player%d", i+1))
		require.Nil(t, err)
		ids = append(ids, id)
	}
	return room, ids
}

func TestJoinRoom(t *testing.T) {
	t.Run("join appends in order", func(t *testing.T) {
		room, ids := makeRoom(t, 3)
		assert.Equal(t, ids, room.PlayerIDs())
	})

	t.Run("locked room rejects joins", func(t *testing.T) {
		room, ids := makeRoom(t, 1)
		require.Nil(t, room.SetLock(ids[0], true))

		_, err := room.Join("latecomer")
		require.NotNil(t, err)
		assert.Equal(t, CodeRoomLocked, err.Code)

		// Unlock opens the gate again.
		require.Nil(t, room.SetLock(ids[0], false))
		_, err = room.Join("latecomer")
		assert.Nil(t, err)
	})

	t.Run("full room rejects joins", func(t *testing.T) {
		room, _ := makeRoom(t, game_constants.MaxPlayersPerRoom-1)
		_, err := room.Join("eleventh")
		require.NotNil(t, err)
		assert.Equal(t, CodeRoomFull, err.Code)
	})

	t.Run("only GM can toggle the lock", func(t *testing.T) {
		room, ids := makeRoom(t, 1)
		err := room.SetLock(ids[1], true)
		require.NotNil(t, err)
		assert.Equal(t, CodeUnauthorized, err.Code)
	})
}

func TestReconnect(t *testing.T) {
	room, ids := makeRoom(t, 2)
	playerID := ids[1]

	require.True(t, room.MarkOffline(playerID))
	view := room.ViewFor(ids[0])
	for _, p := range view.Players {
		if p.ID == playerID {
			assert.False(t, p.Online, "disconnected seat flips offline")
		}
	}

	t.Run("restores the same seat", func(t *testing.T) {
		require.Nil(t, room.Reconnect(playerID, "sock-2"))
		assert.Len(t, room.PlayerIDs(), 3, "no duplicate seat")
	})

	t.Run("idempotent", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.Nil(t, room.Reconnect(playerID, "sock-2"))
		}
		assert.Len(t, room.PlayerIDs(), 3)
	})

	t.Run("unknown player", func(t *testing.T) {
		err := room.Reconnect("nobody", "sock-3")
		require.NotNil(t, err)
		assert.Equal(t, CodeRoomNotFound, err.Code)
	})
}

func TestKickPlayer(t *testing.T) {
	t.Run("GM kicks before start", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		require.Nil(t, room.Kick(ids[0], ids[1]))
		assert.Equal(t, []string{ids[0], ids[2]}, room.PlayerIDs())
	})

	t.Run("non-GM cannot kick", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		err := room.Kick(ids[1], ids[2])
		require.NotNil(t, err)
		assert.Equal(t, CodeUnauthorized, err.Code)
	})

	t.Run("no kicks after game start", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		require.Nil(t, room.StartGame(ids[0]))
		err := room.Kick(ids[0], ids[1])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})

	t.Run("GM cannot kick themselves", func(t *testing.T) {
		room, ids := makeRoom(t, 1)
		err := room.Kick(ids[0], ids[0])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})
}

func TestLeaveRoom(t *testing.T) {
	t.Run("regular player leaves", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		outcome, err := room.Leave(ids[2])
		require.Nil(t, err)
		assert.False(t, outcome.GMLeft)
		assert.False(t, outcome.Empty)
		assert.Len(t, room.PlayerIDs(), 2)
	})

	t.Run("GM leaving dissolves", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		outcome, err := room.Leave(ids[0])
		require.Nil(t, err)
		assert.True(t, outcome.GMLeft)
		// Seats untouched: dissolution handles the teardown.
		assert.Len(t, room.PlayerIDs(), 3)
	})

	t.Run("departed seat is scrubbed from game state", func(t *testing.T) {
		room, ids := makeRoom(t, 4)
		require.Nil(t, room.StartGame(ids[0]))
		_, err := room.AssignGeneral(ids[0])
		require.Nil(t, err)
		require.Nil(t, room.ProposeTeam(ids[0], []string{ids[1], ids[2], ids[3]}))

		// Kicks are blocked mid-game, but leave is not.
		_, gameErr := room.Leave(ids[2])
		require.Nil(t, gameErr)
		view := room.ViewFor(ids[0])
		assert.NotContains(t, view.ProposedTeam, ids[2])
	})
}
