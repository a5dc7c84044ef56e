package services

import (
	"context"
	"strings"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/repositories"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
)

// UserService handles operations on user records. Every operation is scoped
// to the requester: a user can only read, update or delete their own record.
type UserService struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) authorize(requesterID, targetID int64) error {
	if requesterID != targetID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// GetUser retrieves a user record. Reads follow the same scoping rule as the
// health resources: another user's record reads as not found, while writes
// on it are denied explicitly.
func (s *UserService) GetUser(ctx context.Context, requesterID, targetID int64) (*dto.UserResponse, error) {
	if requesterID != targetID {
		return nil, apperrors.ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser applies a partial update to a user record
func (s *UserService) UpdateUser(ctx context.Context, requesterID, targetID int64, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := s.authorize(requesterID, targetID); err != nil {
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
	if req.Age.Present {
		if age, ok := req.Age.Get(); ok && (age < 0 || age > 120) {
			return nil, apperrors.NewValidationError("age must be between 0 and 120")
		}
		fields["age"] = req.Age.Value
	}
	if req.Gender.Present {
		if gender, ok := req.Gender.Get(); ok && !models.ValidGender(gender) {
			return nil, apperrors.NewValidationError("invalid gender")
		}
		fields["gender"] = req.Gender.Value
	}
	if req.MedicalConditions.Present {
		fields["medical_conditions"] = sliceOrEmpty(req.MedicalConditions.Value)
	}
	if req.Allergies.Present {
		fields["allergies"] = sliceOrEmpty(req.Allergies.Value)
	}

	if err := s.userRepo.Update(ctx, targetID, fields); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user record and, through the schema's cascades, all
// of their symptoms, medications and wellness logs.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, targetID int64) error {
	if err := s.authorize(requesterID, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

// sliceOrEmpty replaces an explicit null with an empty list so the column
// never goes back to NULL once set.
func sliceOrEmpty(v *[]string) []string {
	if v == nil || *v == nil {
		return []string{}
	}
	return *v
}
