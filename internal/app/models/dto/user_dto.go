package dto

import (
	"time"

	"github.com/salus-app/salus-backend/internal/app/models"
)

// UserResponse is the safe view of a user: no password hash and no active
// verification or reset tokens, ever.
type UserResponse struct {
	ID                int64           `json:"id"`
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	Age               *int            `json:"age,omitempty"`
	Gender            *models.Gender  `json:"gender,omitempty"`
	Language          models.Language `json:"language"`
	ProfilePicture    *string         `json:"profilePicture,omitempty"`
	Role              models.Role     `json:"role"`
	IsEmailVerified   bool            `json:"isEmailVerified"`
	MedicalConditions []string        `json:"medicalConditions"`
	Allergies         []string        `json:"allergies"`
	LastLogin         *time.Time      `json:"lastLogin,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// NewUserResponse maps a user model to its safe view
func NewUserResponse(user *models.User) UserResponse {
	conditions := user.MedicalConditions
	if conditions == nil {
		conditions = []string{}
	}
	allergies := user.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	return UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		Age:               user.Age,
		Gender:            user.Gender,
		Language:          user.Language,
		ProfilePicture:    user.ProfilePicture,
		Role:              user.Role,
		IsEmailVerified:   user.IsEmailVerified,
		MedicalConditions: conditions,
		Allergies:         allergies,
		LastLogin:         user.LastLogin,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// UpdateProfileRequest updates the authenticated user's own profile via the
// auth surface. Only present fields change.
type UpdateProfileRequest struct {
	Name     Optional[string]          `json:"name"`
	Language Optional[models.Language] `json:"language"`
	Age      Optional[int]             `json:"age"`
	Gender   Optional[models.Gender]   `json:"gender"`
}

// UpdateUserRequest updates a user record via the users resource. Only
// present fields change.
type UpdateUserRequest struct {
	Name              Optional[string]        `json:"name"`
	Age               Optional[int]           `json:"age"`
	Gender            Optional[models.Gender] `json:"gender"`
	MedicalConditions Optional[[]string]      `json:"medicalConditions"`
	Allergies         Optional[[]string]      `json:"allergies"`
}
