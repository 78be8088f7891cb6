package archive

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	models "Polashi/models/postgres"
	"Polashi/services/rooms"
)

/*
 * Manager persists finished matches to PostgreSQL. It sits outside the
 * room's serialized command path: archiving happens after a game-over
 * resolution, from the snapshot the room hands out, so a slow insert can
 * never stall a room.
 */
type Manager struct {
	db *gorm.DB
}

// NewManager creates the archive manager. A nil db disables archiving,
// which is how the server runs without PostgreSQL configured.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Enabled reports whether a database is attached.
func (m *Manager) Enabled() bool {
	return m != nil && m.db != nil
}

// SaveMatch writes one finished game as a MatchRecord row.
func (m *Manager) SaveMatch(result *rooms.MatchResult) error {
	if !m.Enabled() {
		return nil
	}

	history, err := json.Marshal(result.RoundHistory)
	if err != nil {
		return fmt.Errorf("error marshaling round history: %v", err)
	}
	players, err := json.Marshal(result.Players)
	if err != nil {
		return fmt.Errorf("error marshaling match roster: %v", err)
	}

	record := models.MatchRecord{
		RoomCode:     result.RoomCode,
		Winner:       result.Winner,
		ScoreGreen:   result.ScoreGreen,
		ScoreRed:     result.ScoreRed,
		RoundsPlayed: result.RoundsPlayed,
		RoundHistory: history,
		Players:      players,
	}
	if err := m.db.Create(&record).Error; err != nil {
		return fmt.Errorf("error saving match record: %v", err)
	}
	log.Printf("[ARCHIVE] Match %s archived, winner: %s", result.RoomCode, result.Winner)
	return nil
}
