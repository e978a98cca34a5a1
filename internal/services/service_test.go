package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/store"
	"github.com/oliverbeck/peakstatus/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.StatusEntry{}))
	return db
}

func newAuthService(t *testing.T) (*AuthService, *store.UserStore) {
	t.Helper()
	users := store.NewUserStore(newTestDB(t))
	codec := token.NewCodec("test-secret", 24*time.Hour)
	return NewAuthService(users, codec), users
}

func newStatusService(t *testing.T) *StatusService {
	t.Helper()
	return NewStatusService(store.NewStatusStore(newTestDB(t)))
}

func intPtr(n int) *int { return &n }

func timePtr(ts time.Time) *time.Time { return &ts }
