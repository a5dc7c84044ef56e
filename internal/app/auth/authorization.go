package auth

import (
	"context"
	"errors"

	"github.com/salus-app/salus-backend/internal/app/repositories"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/logger"
)

// AuthorizationService handles ownership checks for user-scoped resources.
// Reads on a foreign resource surface as not-found so a caller cannot learn
// which IDs exist; writes on a resource that does exist but belongs to
// someone else are denied explicitly.
type AuthorizationService struct {
	symptomRepo    repositories.ISymptomRepository
	medicationRepo repositories.IMedicationRepository
	wellnessRepo   repositories.IWellnessRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	symptomRepo repositories.ISymptomRepository,
	medicationRepo repositories.IMedicationRepository,
	wellnessRepo repositories.IWellnessRepository,
) *AuthorizationService {
	return &AuthorizationService{
		symptomRepo:    symptomRepo,
		medicationRepo: medicationRepo,
		wellnessRepo:   wellnessRepo,
	}
}

type ownerLookup func(ctx context.Context, id int64) (int64, error)

func (s *AuthorizationService) canModify(ctx context.Context, lookup ownerLookup, resourceID, userID int64, notFound error) error {
	ownerID, err := lookup(ctx, resourceID)
	if err != nil {
		if errors.Is(err, notFound) {
			return err
		}
		logger.Error().Err(err).Int64("resourceID", resourceID).Msg("Error resolving resource owner")
		return err
	}
	if ownerID != userID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanModifySymptom returns nil if the user owns the symptom,
// apperrors.ErrSymptomNotFound if it does not exist, and
// apperrors.ErrPermissionDenied if it belongs to another user.
func (s *AuthorizationService) CanModifySymptom(ctx context.Context, symptomID, userID int64) error {
	return s.canModify(ctx, s.symptomRepo.GetOwnerID, symptomID, userID, apperrors.ErrSymptomNotFound)
}

// CanModifyMedication returns nil if the user owns the medication
func (s *AuthorizationService) CanModifyMedication(ctx context.Context, medicationID, userID int64) error {
	return s.canModify(ctx, s.medicationRepo.GetOwnerID, medicationID, userID, apperrors.ErrMedicationNotFound)
}

// CanModifyWellnessLog returns nil if the user owns the wellness log
func (s *AuthorizationService) CanModifyWellnessLog(ctx context.Context, logID, userID int64) error {
	return s.canModify(ctx, s.wellnessRepo.GetOwnerID, logID, userID, apperrors.ErrWellnessLogNotFound)
}
