package store

import (
	"errors"
	"time"

	"github.com/oliverbeck/peakstatus/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoExistingStatus   = errors.New("no existing status entry")
	ErrAltitudeOutOfRange = errors.New("altitude must be an integer between 1 and 10")
)

// StatusInput carries the caller-supplied fields of a write. Nil fields are
// "not specified" and, on update, carry forward from the latest entry.
type StatusInput struct {
	LastWaterIntake *time.Time
	Altitude        *int
}

// StatusStore persists the append-only status history. Rows are never
// updated in place; every write inserts a new entry.
type StatusStore struct {
	db *gorm.DB
}

func NewStatusStore(db *gorm.DB) *StatusStore {
	return &StatusStore{db: db}
}

// Latest returns the entry with the greatest created_at (ties broken by
// greatest id), or (nil, nil) when the user has no entries yet.
func (s *StatusStore) Latest(userID uint) (*models.StatusEntry, error) {
	var entry models.StatusEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new entry, stamping last_updated at insertion time.
// Altitude outside [1,10] is rejected outright; clamping is a caller
// concern and never happens here.
func (s *StatusStore) Create(in StatusInput, userID uint) (*models.StatusEntry, error) {
	if err := checkAltitude(in.Altitude); err != nil {
		return nil, err
	}

	entry := models.StatusEntry{
		UserID:          userID,
		LastWaterIntake: in.LastWaterIntake,
		Altitude:        in.Altitude,
		LastUpdated:     time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update is not an in-place update: it reads the latest entry, carries
// forward any field absent from in, and inserts the merged result as a new
// row. Fails with ErrNoExistingStatus when the user has no prior entry.
//
// The read-then-insert pair is not serialized per user; two concurrent
// updates can both merge from the same latest row, and the later insert
// wins. Acceptable for the single-admin usage this store is built for.
func (s *StatusStore) Update(in StatusInput, userID uint) (*models.StatusEntry, error) {
	if err := checkAltitude(in.Altitude); err != nil {
		return nil, err
	}

	latest, err := s.Latest(userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoExistingStatus
	}

	merged := StatusInput{
		LastWaterIntake: in.LastWaterIntake,
		Altitude:        in.Altitude,
	}
	if merged.LastWaterIntake == nil {
		merged.LastWaterIntake = latest.LastWaterIntake
	}
	if merged.Altitude == nil {
		merged.Altitude = latest.Altitude
	}

	return s.Create(merged, userID)
}

// History returns up to limit entries ordered newest first.
func (s *StatusStore) History(userID uint, limit int) ([]models.StatusEntry, error) {
	var entries []models.StatusEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// DeleteAll removes every entry for the user and reports whether any row
// existed to delete.
func (s *StatusStore) DeleteAll(userID uint) (bool, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&models.StatusEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func checkAltitude(altitude *int) error {
	if altitude != nil && (*altitude < 1 || *altitude > 10) {
		return ErrAltitudeOutOfRange
	}
	return nil
}
