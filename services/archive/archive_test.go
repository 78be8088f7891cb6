package archive

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Polashi/services/rooms"
)

func mockedManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewManager(gormDB), mock
}

func sampleResult() *rooms.MatchResult {
	return &rooms.MatchResult{
		RoomCode:     "QT7F",
		Winner:       "East India Company (Red)",
		ScoreGreen:   1,
		ScoreRed:     3,
		RoundsPlayed: 4,
		RoundHistory: []string{"Red", "Green", "Red", "Red"},
		Players: []rooms.MatchPlayer{
			{ID: "p1", Name: "alice", Character: "Robert Clive", Team: "East India Company (EIC)"},
			{ID: "p2", Name: "bob", Character: "Mir Madan", Team: "Nawabs"},
		},
	}
}

func TestSaveMatch(t *testing.T) {
	manager, mock := mockedManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "match_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := manager.SaveMatch(sampleResult())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMatchInsertError(t *testing.T) {
	manager, mock := mockedManager(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "match_records"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := manager.SaveMatch(sampleResult())
	assert.Error(t, err)
}

func TestSaveMatchDisabled(t *testing.T) {
	manager := NewManager(nil)
	assert.False(t, manager.Enabled())
	// Without a database the save is a silent no-op.
	assert.NoError(t, manager.SaveMatch(sampleResult()))
}
