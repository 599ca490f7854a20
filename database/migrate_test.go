package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alloylab/config"
	"github.com/alloylab/models"
)

func newMemoryConnection(t *testing.T, name string) *DBConnection {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	conn := &DBConnection{DB: db, Name: name, Driver: config.DriverSQLite, log: zap.NewNop()}
	require.NoError(t, conn.Migrate())
	return conn
}

func TestCopyData(t *testing.T) {
	source := newMemoryConnection(t, "source")
	target := newMemoryConnection(t, "target")

	operator := models.User{Name: "ivanov", PasswordHash: "x", IsOperator: true, IsActive: true}
	require.NoError(t, source.DB.Create(&operator).Error)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	exp := models.Experiment{
		Name:          "melt-1",
		Task:          "anneal",
		Delivered:     now,
		Manufacture:   now,
		Result:        models.ResultSuccess,
		Creator:       "ivanov",
		CreatorID:     &operator.ID,
		ConductedByID: &operator.ID,
		Compositions: []models.Composition{
			{Element: "Fe", Percentage: 80},
			{Element: "Cr", Percentage: 20},
		},
	}
	require.NoError(t, source.DB.Create(&exp).Error)

	require.NoError(t, CopyData(source, target))

	var copied models.Experiment
	require.NoError(t, target.DB.Preload("Compositions").Preload("ConductedBy").First(&copied, exp.ID).Error)
	assert.Equal(t, "melt-1", copied.Name)
	assert.Equal(t, models.ResultSuccess, copied.Result)
	assert.Len(t, copied.Compositions, 2)
	require.NotNil(t, copied.ConductedBy)
	assert.Equal(t, "ivanov", copied.ConductedBy.Name)
}

func TestNewDBConnection_RequiresURL(t *testing.T) {
	_, err := NewDBConnection("target", config.DatabaseConfig{Driver: config.DriverSQLite}, zap.NewNop())
	assert.EqualError(t, err, "database URL cannot be empty")
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)
}
