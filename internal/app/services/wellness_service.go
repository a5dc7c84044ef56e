package services

import (
	"context"
	"math"
	"time"

	"github.com/salus-app/salus-backend/internal/app/auth"
	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/repositories"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/helpers"
)

// statsWindow is the lookback period of the statistics endpoint
const statsWindow = 30 * 24 * time.Hour

// WellnessService handles wellness log operations and statistics
type WellnessService struct {
	wellnessRepo repositories.IWellnessRepository
	authzService *auth.AuthorizationService
}

// NewWellnessService creates a new WellnessService
func NewWellnessService(wellnessRepo repositories.IWellnessRepository, authzService *auth.AuthorizationService) *WellnessService {
	return &WellnessService{
		wellnessRepo: wellnessRepo,
		authzService: authzService,
	}
}

// CreateWellnessLog records a wellness log for the user. The date defaults to
// now; a second log for the same day is rejected with a conflict regardless
// of who wins a concurrent race, since the database constraint decides.
func (s *WellnessService) CreateWellnessLog(ctx context.Context, userID int64, req *dto.CreateWellnessLogRequest) (*models.WellnessLog, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	log := &models.WellnessLog{
		UserID:           userID,
		Date:             date,
		Mood:             req.Mood,
		Energy:           req.Energy,
		Stress:           req.Stress,
		PhysicalActivity: req.PhysicalActivity,
		Notes:            req.Notes,
	}
	if req.Sleep != nil {
		log.SleepHours = req.Sleep.Hours
		log.SleepQuality = req.Sleep.Quality
	}
	if req.Nutrition != nil {
		log.NutritionQuality = req.Nutrition.Quality
		log.NutritionHydration = req.Nutrition.Hydration
	}

	id, err := s.wellnessRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	return s.wellnessRepo.GetByID(ctx, id)
}

// GetWellnessLogs lists a user's wellness logs, newest date first
func (s *WellnessService) GetWellnessLogs(ctx context.Context, userID int64) ([]*models.WellnessLog, error) {
	return s.wellnessRepo.GetAllByUserID(ctx, userID)
}

// GetWellnessLog retrieves a single wellness log. A log belonging to another
// user is reported as not found.
func (s *WellnessService) GetWellnessLog(ctx context.Context, userID, logID int64) (*models.WellnessLog, error) {
	log, err := s.wellnessRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log.UserID != userID {
		return nil, apperrors.ErrWellnessLogNotFound
	}
	return log, nil
}

// UpdateWellnessLog applies a partial update after an ownership check. The
// date is immutable; clients delete and recreate to move a log.
func (s *WellnessService) UpdateWellnessLog(ctx context.Context, userID, logID int64, req *dto.UpdateWellnessLogRequest) (*models.WellnessLog, error) {
	if err := s.authzService.CanModifyWellnessLog(ctx, logID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if mood, ok := req.Mood.Get(); ok {
		if mood < 1 || mood > 10 {
			return nil, apperrors.NewValidationError("mood must be between 1 and 10")
		}
		fields["mood"] = mood
	}
	if energy, ok := req.Energy.Get(); ok {
		if energy < 1 || energy > 10 {
			return nil, apperrors.NewValidationError("energy must be between 1 and 10")
		}
		fields["energy"] = energy
	}
	if req.Sleep.Present {
		if sleep, ok := req.Sleep.Get(); ok {
			if sleep.Hours != nil && (*sleep.Hours < 0 || *sleep.Hours > 24) {
				return nil, apperrors.NewValidationError("sleep hours must be between 0 and 24")
			}
			if sleep.Quality != nil && (*sleep.Quality < 1 || *sleep.Quality > 10) {
				return nil, apperrors.NewValidationError("sleep quality must be between 1 and 10")
			}
			fields["sleep_hours"] = sleep.Hours
			fields["sleep_quality"] = sleep.Quality
		} else {
			fields["sleep_hours"] = nil
			fields["sleep_quality"] = nil
		}
	}
	if req.Nutrition.Present {
		if nutrition, ok := req.Nutrition.Get(); ok {
			if nutrition.Quality != nil && (*nutrition.Quality < 1 || *nutrition.Quality > 10) {
				return nil, apperrors.NewValidationError("nutrition quality must be between 1 and 10")
			}
			if nutrition.Hydration != nil && (*nutrition.Hydration < 1 || *nutrition.Hydration > 10) {
				return nil, apperrors.NewValidationError("nutrition hydration must be between 1 and 10")
			}
			fields["nutrition_quality"] = nutrition.Quality
			fields["nutrition_hydration"] = nutrition.Hydration
		} else {
			fields["nutrition_quality"] = nil
			fields["nutrition_hydration"] = nil
		}
	}
	if req.Stress.Present {
		if stress, ok := req.Stress.Get(); ok && (stress < 1 || stress > 10) {
			return nil, apperrors.NewValidationError("stress must be between 1 and 10")
		}
		fields["stress"] = req.Stress.Value
	}
	if req.PhysicalActivity.Present {
		if activity, ok := req.PhysicalActivity.Get(); ok && (activity < 0 || activity > 600) {
			return nil, apperrors.NewValidationError("physicalActivity must be between 0 and 600")
		}
		fields["physical_activity"] = req.PhysicalActivity.Value
	}
	if req.Notes.Present {
		fields["notes"] = req.Notes.Value
	}

	if err := s.wellnessRepo.Update(ctx, logID, fields); err != nil {
		return nil, err
	}
	return s.wellnessRepo.GetByID(ctx, logID)
}

// DeleteWellnessLog removes a wellness log after an ownership check
func (s *WellnessService) DeleteWellnessLog(ctx context.Context, userID, logID int64) error {
	if err := s.authzService.CanModifyWellnessLog(ctx, logID, userID); err != nil {
		return err
	}
	return s.wellnessRepo.Delete(ctx, logID)
}

// GetWellnessStats computes 30-day statistics over the user's logs. Every
// entry counts in the divisor of every average; an entry missing an optional
// field contributes 0 for it. Established client behavior depends on this, so
// sparse fields read lower than the mean of their recorded values.
func (s *WellnessService) GetWellnessStats(ctx context.Context, userID int64) (*dto.WellnessStatsResponse, error) {
	since := time.Now().Add(-statsWindow)
	logs, err := s.wellnessRepo.GetByUserIDSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	stats := &dto.WellnessStatsResponse{
		Entries: len(logs),
		Trends: dto.WellnessTrends{
			Mood:         make([]dto.TrendPoint, 0, len(logs)),
			Energy:       make([]dto.TrendPoint, 0, len(logs)),
			SleepQuality: make([]dto.TrendPoint, 0, len(logs)),
			Stress:       make([]dto.TrendPoint, 0, len(logs)),
		},
	}
	if len(logs) == 0 {
		return stats, nil
	}

	var sums struct {
		mood, energy, sleepHours, sleepQuality float64
		nutritionQuality, nutritionHydration   float64
		stress, physicalActivity               float64
	}
	for _, log := range logs {
		sums.mood += float64(log.Mood)
		sums.energy += float64(log.Energy)
		sums.sleepHours += floatOrZero(log.SleepHours)
		sums.sleepQuality += intOrZero(log.SleepQuality)
		sums.nutritionQuality += intOrZero(log.NutritionQuality)
		sums.nutritionHydration += intOrZero(log.NutritionHydration)
		sums.stress += intOrZero(log.Stress)
		sums.physicalActivity += intOrZero(log.PhysicalActivity)

		day := helpers.DayKey(log.Date)
		stats.Trends.Mood = append(stats.Trends.Mood, dto.TrendPoint{Date: day, Value: float64(log.Mood)})
		stats.Trends.Energy = append(stats.Trends.Energy, dto.TrendPoint{Date: day, Value: float64(log.Energy)})
		stats.Trends.SleepQuality = append(stats.Trends.SleepQuality, dto.TrendPoint{Date: day, Value: intOrZero(log.SleepQuality)})
		stats.Trends.Stress = append(stats.Trends.Stress, dto.TrendPoint{Date: day, Value: intOrZero(log.Stress)})
	}

	n := float64(len(logs))
	stats.Averages = dto.WellnessAverages{
		Mood:               round1(sums.mood / n),
		Energy:             round1(sums.energy / n),
		SleepHours:         round1(sums.sleepHours / n),
		SleepQuality:       round1(sums.sleepQuality / n),
		NutritionQuality:   round1(sums.nutritionQuality / n),
		NutritionHydration: round1(sums.nutritionHydration / n),
		Stress:             round1(sums.stress / n),
		PhysicalActivity:   round1(sums.physicalActivity / n),
	}
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}
