package services

import (
	"context"
	"strings"
	"time"

	"github.com/salus-app/salus-backend/internal/app/auth"
	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/repositories"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
)

// SymptomService handles symptom operations
type SymptomService struct {
	symptomRepo  repositories.ISymptomRepository
	authzService *auth.AuthorizationService
}

// NewSymptomService creates a new SymptomService
func NewSymptomService(symptomRepo repositories.ISymptomRepository, authzService *auth.AuthorizationService) *SymptomService {
	return &SymptomService{
		symptomRepo:  symptomRepo,
		authzService: authzService,
	}
}

// CreateSymptom records a new symptom for the user. The report date defaults
// to now when the client omits it.
func (s *SymptomService) CreateSymptom(ctx context.Context, userID int64, req *dto.CreateSymptomRequest) (*models.Symptom, error) {
	dateReported := time.Now()
	if req.DateReported != nil {
		dateReported = *req.DateReported
	}

	symptom := &models.Symptom{
		UserID:       userID,
		Name:         req.Name,
		Severity:     req.Severity,
		Description:  req.Description,
		Duration:     req.Duration,
		Triggers:     req.Triggers,
		DateReported: dateReported,
		IsActive:     true,
	}

	id, err := s.symptomRepo.Create(ctx, symptom)
	if err != nil {
		return nil, err
	}
	return s.symptomRepo.GetByID(ctx, id)
}

// GetSymptoms lists a user's symptoms, newest report first
func (s *SymptomService) GetSymptoms(ctx context.Context, userID int64) ([]*models.Symptom, error) {
	return s.symptomRepo.GetAllByUserID(ctx, userID)
}

// GetSymptom retrieves a single symptom. A symptom belonging to another user
// is reported as not found, indistinguishable from a missing one.
func (s *SymptomService) GetSymptom(ctx context.Context, userID, symptomID int64) (*models.Symptom, error) {
	symptom, err := s.symptomRepo.GetByID(ctx, symptomID)
	if err != nil {
		return nil, err
	}
	if symptom.UserID != userID {
		return nil, apperrors.ErrSymptomNotFound
	}
	return symptom, nil
}

// UpdateSymptom applies a partial update after an ownership check
func (s *SymptomService) UpdateSymptom(ctx context.Context, userID, symptomID int64, req *dto.UpdateSymptomRequest) (*models.Symptom, error) {
	if err := s.authzService.CanModifySymptom(ctx, symptomID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if name, ok := req.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		fields["name"] = name
	}
	if severity, ok := req.Severity.Get(); ok {
		if severity < 1 || severity > 10 {
			return nil, apperrors.NewValidationError("severity must be between 1 and 10")
		}
		fields["severity"] = severity
	}
	if req.Description.Present {
		fields["description"] = req.Description.Value
	}
	if req.Duration.Present {
		fields["duration"] = req.Duration.Value
	}
	if req.Triggers.Present {
		fields["triggers"] = req.Triggers.Value
	}
	if date, ok := req.DateReported.Get(); ok {
		fields["date_reported"] = date
	}
	if isActive, ok := req.IsActive.Get(); ok {
		fields["is_active"] = isActive
	}

	if err := s.symptomRepo.Update(ctx, symptomID, fields); err != nil {
		return nil, err
	}
	return s.symptomRepo.GetByID(ctx, symptomID)
}

// DeleteSymptom removes a symptom after an ownership check
func (s *SymptomService) DeleteSymptom(ctx context.Context, userID, symptomID int64) error {
	if err := s.authzService.CanModifySymptom(ctx, symptomID, userID); err != nil {
		return err
	}
	return s.symptomRepo.Delete(ctx, symptomID)
}
