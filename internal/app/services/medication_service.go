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

// MedicationService handles medication operations
type MedicationService struct {
	medicationRepo repositories.IMedicationRepository
	authzService   *auth.AuthorizationService
}

// NewMedicationService creates a new MedicationService
func NewMedicationService(medicationRepo repositories.IMedicationRepository, authzService *auth.AuthorizationService) *MedicationService {
	return &MedicationService{
		medicationRepo: medicationRepo,
		authzService:   authzService,
	}
}

// CreateMedication records a new medication for the user
func (s *MedicationService) CreateMedication(ctx context.Context, userID int64, req *dto.CreateMedicationRequest) (*models.Medication, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationError("endDate cannot be before startDate")
	}

	name := strings.TrimSpace(req.Name)
	dosage := strings.TrimSpace(req.Dosage)
	frequency := strings.TrimSpace(req.Frequency)
	if name == "" || dosage == "" || frequency == "" {
		return nil, apperrors.NewValidationError("name, dosage and frequency cannot be blank")
	}

	sideEffects := req.SideEffects
	if sideEffects == nil {
		sideEffects = []string{}
	}

	medication := &models.Medication{
		UserID:       userID,
		Name:         name,
		Dosage:       dosage,
		Frequency:    frequency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Purpose:      req.Purpose,
		Instructions: req.Instructions,
		IsActive:     true,
		SideEffects:  sideEffects,
		Reminders:    req.ReminderModels(),
	}

	id, err := s.medicationRepo.Create(ctx, medication)
	if err != nil {
		return nil, err
	}
	return s.medicationRepo.GetByID(ctx, id)
}

// GetMedications lists a user's medications, newest start first
func (s *MedicationService) GetMedications(ctx context.Context, userID int64) ([]*models.Medication, error) {
	return s.medicationRepo.GetAllByUserID(ctx, userID)
}

// GetActiveMedications lists the medications currently in effect: flagged
// active and not past their end date.
func (s *MedicationService) GetActiveMedications(ctx context.Context, userID int64) ([]*models.Medication, error) {
	medications, err := s.medicationRepo.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := make([]*models.Medication, 0, len(medications))
	for _, m := range medications {
		if m.IsCurrentlyActive(now) {
			active = append(active, m)
		}
	}
	return active, nil
}

// GetMedication retrieves a single medication. A medication belonging to
// another user is reported as not found.
func (s *MedicationService) GetMedication(ctx context.Context, userID, medicationID int64) (*models.Medication, error) {
	medication, err := s.medicationRepo.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication.UserID != userID {
		return nil, apperrors.ErrMedicationNotFound
	}
	return medication, nil
}

// UpdateMedication applies a partial update after an ownership check.
// An explicit null endDate clears the end date, making the medication
// ongoing again.
func (s *MedicationService) UpdateMedication(ctx context.Context, userID, medicationID int64, req *dto.UpdateMedicationRequest) (*models.Medication, error) {
	if err := s.authzService.CanModifyMedication(ctx, medicationID, userID); err != nil {
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
	if dosage, ok := req.Dosage.Get(); ok {
		dosage = strings.TrimSpace(dosage)
		if dosage == "" {
			return nil, apperrors.NewValidationError("dosage cannot be empty")
		}
		fields["dosage"] = dosage
	}
	if frequency, ok := req.Frequency.Get(); ok {
		frequency = strings.TrimSpace(frequency)
		if frequency == "" {
			return nil, apperrors.NewValidationError("frequency cannot be empty")
		}
		fields["frequency"] = frequency
	}
	if startDate, ok := req.StartDate.Get(); ok {
		fields["start_date"] = startDate
	}
	if req.EndDate.Present {
		fields["end_date"] = req.EndDate.Value
	}
	if req.Purpose.Present {
		fields["purpose"] = req.Purpose.Value
	}
	if req.Instructions.Present {
		fields["instructions"] = req.Instructions.Value
	}
	if isActive, ok := req.IsActive.Get(); ok {
		fields["is_active"] = isActive
	}
	if req.SideEffects.Present {
		fields["side_effects"] = sliceOrEmpty(req.SideEffects.Value)
	}
	if reminders, ok := req.Reminders.Get(); ok {
		converted := make([]models.Reminder, 0, len(reminders))
		for _, rem := range reminders {
			enabled := true
			if rem.Enabled != nil {
				enabled = *rem.Enabled
			}
			converted = append(converted, models.Reminder{Time: rem.Time, Enabled: enabled})
		}
		fields["reminders"] = converted
	}

	if err := s.medicationRepo.Update(ctx, medicationID, fields); err != nil {
		return nil, err
	}
	return s.medicationRepo.GetByID(ctx, medicationID)
}

// DeleteMedication removes a medication after an ownership check
func (s *MedicationService) DeleteMedication(ctx context.Context, userID, medicationID int64) error {
	if err := s.authzService.CanModifyMedication(ctx, medicationID, userID); err != nil {
		return err
	}
	return s.medicationRepo.Delete(ctx, medicationID)
}
