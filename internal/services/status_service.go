package services

import (
	"fmt"
	"math"

	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/store"
)

// statsWindow bounds how much history feeds the aggregate stats.
const statsWindow = 1000

type StatusService struct {
	statuses *store.StatusStore
}

func NewStatusService(statuses *store.StatusStore) *StatusService {
	return &StatusService{statuses: statuses}
}

// GetLatestStatus returns the newest entry, or nil when none exists yet.
func (s *StatusService) GetLatestStatus(userID uint) (*models.StatusEntry, error) {
	entry, err := s.statuses.Latest(userID)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}
	return entry, nil
}

// CreateStatus records a fresh entry. Out-of-range altitudes are clamped
// into [1,10] here, before the store's hard bound check ever sees them.
func (s *StatusService) CreateStatus(req *dto.StatusRequest, userID uint) (*models.StatusEntry, error) {
	in := sanitizeInput(req)
	entry, err := s.statuses.Create(in, userID)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}
	return entry, nil
}

// UpdateStatus appends a new entry merged from the latest one. A PUT-style
// update requires a prior create: with no existing entry it fails with
// ErrNotFound instead of silently creating.
func (s *StatusService) UpdateStatus(req *dto.StatusRequest, userID uint) (*models.StatusEntry, error) {
	if req.LastWaterIntake == nil && req.Altitude == nil {
		return nil, fmt.Errorf("%w: at least one field is required", ErrValidation)
	}

	latest, err := s.statuses.Latest(userID)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: no existing status; create one first", ErrNotFound)
	}

	in := sanitizeInput(req)
	entry, err := s.statuses.Update(in, userID)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}
	return entry, nil
}

func (s *StatusService) GetStatusHistory(userID uint, limit int) ([]models.StatusEntry, error) {
	entries, err := s.statuses.History(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}
	return entries, nil
}

// DeleteAllStatus destroys the user's entire history. Deleting zero rows is
// an error, not a no-op success.
func (s *StatusService) DeleteAllStatus(userID uint) error {
	deleted, err := s.statuses.DeleteAll(userID)
	if err != nil {
		return fmt.Errorf("status storage failed: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: no status entries for user", ErrNotFound)
	}
	return nil
}

// GetUserStats aggregates up to the most recent 1000 entries: total count,
// mean altitude rounded to 2 decimal places, and the lastUpdated of the
// newest entry.
func (s *StatusService) GetUserStats(userID uint) (*dto.UserStatsResponse, error) {
	entries, err := s.statuses.History(userID, statsWindow)
	if err != nil {
		return nil, fmt.Errorf("status storage failed: %w", err)
	}

	stats := &dto.UserStatsResponse{}
	if len(entries) == 0 {
		return stats, nil
	}

	stats.TotalEntries = len(entries)
	last := entries[0].LastUpdated
	stats.LastActivityDate = &last

	var sum float64
	var count int
	for i := range entries {
		if entries[i].Altitude != nil {
			sum += float64(*entries[i].Altitude)
			count++
		}
	}
	if count > 0 {
		stats.AverageAltitude = math.Round(sum/float64(count)*100) / 100
	}
	return stats, nil
}

func sanitizeInput(req *dto.StatusRequest) store.StatusInput {
	in := store.StatusInput{LastWaterIntake: req.LastWaterIntake}
	if req.Altitude != nil {
		clamped := clampAltitude(*req.Altitude)
		in.Altitude = &clamped
	}
	return in
}

func clampAltitude(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
