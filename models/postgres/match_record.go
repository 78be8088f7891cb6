package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'MatchRecord' is one finished game. Rooms live entirely in memory while a
 * game runs; a row is written here only when a side reaches three rounds.
 */
type MatchRecord struct {
	ID           uint           `gorm:"primaryKey"`
	RoomCode     string         `gorm:"size:10;not null;index:idx_match_records_room_code"`
	Winner       string         `gorm:"size:50;not null"`
	ScoreGreen   int            `gorm:"default:0"`
	ScoreRed     int            `gorm:"default:0"`
	RoundsPlayed int            `gorm:"default:0"`
	RoundHistory datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Players      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
