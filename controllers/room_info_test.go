package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_models "Polashi/models/redis"
)

type stubDirectory struct {
	summaries map[string]*redis_models.RoomSummary
}

func (s *stubDirectory) GetRoomSummary(roomCode string) (*redis_models.RoomSummary, error) {
	summary, ok := s.summaries[roomCode]
	if !ok {
		return nil, errors.New("room summary not found")
	}
	return summary, nil
}

func setupRoomInfoRouter(directory RoomDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rc := &RoomInfoController{Directory: directory}
	r.GET("/rooms/:code", rc.GetRoomInfo)
	return r
}

func TestGetRoomInfo(t *testing.T) {
	directory := &stubDirectory{summaries: map[string]*redis_models.RoomSummary{
		"QT7F": {
			RoomCode:    "QT7F",
			PlayerCount: 5,
			Locked:      true,
			GameStarted: true,
			GameStatus:  "ACTIVE",
		},
	}}
	router := setupRoomInfoRouter(directory)

	t.Run("known room", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rooms/QT7F", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "QT7F", body["room_code"])
		assert.Equal(t, float64(5), body["player_count"])
		assert.Equal(t, true, body["locked"])
		assert.Equal(t, true, body["game_started"])
		assert.Equal(t, "ACTIVE", body["game_status"])
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rooms/qt7f", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown room", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rooms/ZZZZ", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetRoomInfoWithoutDirectory(t *testing.T) {
	router := setupRoomInfoRouter(nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rooms/QT7F", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
