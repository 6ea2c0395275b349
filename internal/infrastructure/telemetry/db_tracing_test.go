package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTracedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := openTracedDB(t)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{}, zaptest.NewLogger(t)))
	require.NoError(t, db.Create(&tracedRow{Name: "a"}).Error)

	assert.Empty(t, recorder.Ended())
}

func TestRegisterDBTracing_Enabled(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := openTracedDB(t)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBName: "pos"}, zaptest.NewLogger(t)))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "a"}).Error)
	var rows []tracedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	assert.Len(t, rows, 1)
	assert.GreaterOrEqual(t, len(recorder.Ended()), 2)

	err := db.WithContext(ctx).Exec("SELECT * FROM missing_table").Error
	require.Error(t, err)

	var failed bool
	for _, span := range recorder.Ended() {
		if span.Status().Code == codes.Error {
			failed = true
		}
	}
	assert.True(t, failed)
}
