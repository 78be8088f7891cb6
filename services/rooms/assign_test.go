package rooms

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	game_constants "Polashi/constants/game"
	"Polashi/models/game"
)

func TestStartGame(t *testing.T) {
	t.Run("only the GM starts", func(t *testing.T) {
		room, ids := makeRoom(t, 4)
		err := room.StartGame(ids[1])
		require.NotNil(t, err)
		assert.Equal(t, CodeUnauthorized, err.Code)
	})

	t.Run("needs two players", func(t *testing.T) {
		room, ids := makeRoom(t, 0)
		err := room.StartGame(ids[0])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})

	t.Run("cannot start twice", func(t *testing.T) {
		room, ids := makeRoom(t, 4)
		require.Nil(t, room.StartGame(ids[0]))
		err := room.StartGame(ids[0])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})

	t.Run("deals distinct roles to every seat", func(t *testing.T) {
		room, ids := makeRoom(t, 4)
		require.Nil(t, room.StartGame(ids[0]))

		seen := map[int]bool{}
		eicCount := 0
		for _, id := range ids {
			p := room.state.FindPlayer(id)
			require.NotNil(t, p.Character, "every player gets a role")
			assert.False(t, seen[p.Character.ID], "roles are dealt without replacement")
			seen[p.Character.ID] = true
			require.NotNil(t, p.LastCharacterID)
			assert.Equal(t, p.Character.ID, *p.LastCharacterID)
			if p.Character.Team == game_constants.TeamEIC {
				eicCount++
			}
		}
		assert.Equal(t, game_constants.EICCountForPlayers(5), eicCount)
		assert.Equal(t, game_constants.StatusActive, room.state.GameStatus)
		assert.True(t, room.state.GameStarted)
	})
}

func TestSecretIntel(t *testing.T) {
	room, ids := makeRoom(t, 6) // 7 players, 3 conspirators
	require.Nil(t, room.StartGame(ids[0]))

	var eicNames []string
	for _, id := range ids {
		p := room.state.FindPlayer(id)
		if p.Character.Team == game_constants.TeamEIC {
			eicNames = append(eicNames, p.Name)
		}
	}
	require.Len(t, eicNames, 3)

	for _, id := range ids {
		p := room.state.FindPlayer(id)
		intel := room.state.SecretIntel[id]
		require.NotEmpty(t, intel)
		if p.Character.Team == game_constants.TeamEIC {
			// Conspirators learn each other by name.
			var named int
			for _, name := range eicNames {
				if name == p.Name {
					continue
				}
				assert.Contains(t, intel, fmt.Sprintf("%s marches with the Company", name))
				named++
			}
			assert.Equal(t, 2, named)
		} else {
			assert.Contains(t, intel, "3 conspirators walk among you")
			// Loyalist intel never names anyone.
			for _, line := range intel {
				for _, name := range eicNames {
					assert.NotContains(t, line, name)
				}
			}
		}
	}

	t.Run("the seal holder is told", func(t *testing.T) {
		holder := room.state.GuptochorID
		require.NotEmpty(t, holder)
		assert.Contains(t, room.state.SecretIntel[holder], "You carry the Guptochor's seal")
		assert.Equal(t, game_constants.TeamNawabs,
			room.state.FindPlayer(holder).Character.Team, "the seal goes to a loyalist")
	})
}

// Snapshots never leak another player's role: each recipient sees their own
// character and intel, and null for everyone else's.
func TestViewRedaction(t *testing.T) {
	room, ids := makeRoom(t, 4)
	require.Nil(t, room.StartGame(ids[0]))

	for _, recipient := range ids {
		view := room.ViewFor(recipient)
		require.Len(t, view.Players, 5)
		for _, pv := range view.Players {
			if pv.ID == recipient {
				assert.NotNil(t, pv.Character)
			} else {
				assert.Nil(t, pv.Character, "foreign roles are stripped")
			}
		}
		assert.Equal(t, room.state.SecretIntel[recipient], view.SecretIntel)
	}
}

func TestAssignGeneral(t *testing.T) {
	t.Run("requires a started game", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		_, err := room.AssignGeneral(ids[0])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})

	t.Run("stops rotating once the game is over", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		require.Nil(t, room.StartGame(ids[0]))
		room.state.GameStatus = game_constants.StatusOver
		_, err := room.AssignGeneral(ids[0])
		require.NotNil(t, err)
		assert.Equal(t, CodeInvalidState, err.Code)
	})

	t.Run("rotates through join order and wraps", func(t *testing.T) {
		room, ids := makeRoom(t, 2)
		require.Nil(t, room.StartGame(ids[0]))

		expected := []string{ids[0], ids[1], ids[2], ids[0]}
		for i, want := range expected {
			name, err := room.AssignGeneral(ids[0])
			require.Nil(t, err)
			general := room.state.General()
			require.NotNil(t, general)
			assert.Equal(t, want, general.ID, "rotation step %d", i)
			assert.Equal(t, general.Name, name)
			assert.Equal(t, i%3, room.state.TurnIndex)

			// Exactly one General at a time.
			count := 0
			for _, p := range room.state.Players {
				if p.IsGeneral {
					count++
				}
			}
			assert.Equal(t, 1, count)
		}
	})
}

func TestResetGame(t *testing.T) {
	room, ids := makeRoom(t, 4)
	require.Nil(t, room.StartGame(ids[0]))
	_, err := room.AssignGeneral(ids[0])
	require.Nil(t, err)
	room.state.ScoreRed = 2
	room.state.RoundHistory = []string{"Red", "Red"}
	room.state.GuptochorUsed = true

	t.Run("only the GM resets", func(t *testing.T) {
		resetErr := room.ResetGame(ids[1])
		require.NotNil(t, resetErr)
		assert.Equal(t, CodeUnauthorized, resetErr.Code)
	})

	require.Nil(t, room.ResetGame(ids[0]))

	assert.Equal(t, game_constants.StatusWaiting, room.state.GameStatus)
	assert.False(t, room.state.GameStarted)
	assert.Equal(t, 1, room.state.CurrentRound)
	assert.Zero(t, room.state.ScoreRed)
	assert.Empty(t, room.state.RoundHistory)
	assert.Empty(t, room.state.GuptochorID)
	assert.False(t, room.state.GuptochorUsed)
	assert.Empty(t, room.state.SecretIntel)
	for _, p := range room.state.Players {
		assert.Nil(t, p.Character)
		assert.False(t, p.IsGeneral)
		assert.NotNil(t, p.LastCharacterID, "last-held role survives the reset")
	}
}

func TestDrawAvoiding(t *testing.T) {
	pool := []game.Character{{ID: 1}, {ID: 2}, {ID: 3}}

	t.Run("skips the avoided head", func(t *testing.T) {
		avoid := 1
		c, rest := drawAvoiding(pool, &avoid)
		assert.Equal(t, 2, c.ID)
		assert.Len(t, rest, 2)
	})

	t.Run("falls back when the pool leaves no choice", func(t *testing.T) {
		avoid := 9
		c, _ := drawAvoiding([]game.Character{{ID: 9}}, &avoid)
		assert.Equal(t, 9, c.ID)
	})

	t.Run("nil avoid takes the head", func(t *testing.T) {
		c, rest := drawAvoiding(pool, nil)
		assert.Equal(t, 1, c.ID)
		assert.Len(t, rest, 2)
	})
}
