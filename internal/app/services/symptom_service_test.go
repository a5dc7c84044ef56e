package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/salus-app/salus-backend/internal/app/auth"
	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
)

func newTestSymptomService(symptomRepo *mockSymptomRepo) *SymptomService {
	authz := appauth.NewAuthorizationService(symptomRepo, &mockMedicationRepo{}, &mockWellnessRepo{})
	return NewSymptomService(symptomRepo, authz)
}

func TestCreateSymptomDefaultsReportDate(t *testing.T) {
	var created *models.Symptom
	repo := &mockSymptomRepo{
		CreateFn: func(ctx context.Context, symptom *models.Symptom) (int64, error) {
			symptom.ID = 1
			created = symptom
			return 1, nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Symptom, error) {
			return created, nil
		},
	}
	svc := newTestSymptomService(repo)

	symptom, err := svc.CreateSymptom(context.Background(), 7, &dto.CreateSymptomRequest{
		Name:     "Headache",
		Severity: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), symptom.UserID)
	assert.True(t, symptom.IsActive)
	assert.WithinDuration(t, time.Now(), symptom.DateReported, time.Minute)
}

func TestGetSymptomCrossTenantReadsAsNotFound(t *testing.T) {
	repo := &mockSymptomRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Symptom, error) {
			return &models.Symptom{ID: id, UserID: 99}, nil
		},
	}
	svc := newTestSymptomService(repo)

	_, err := svc.GetSymptom(context.Background(), 7, 5)
	assert.ErrorIs(t, err, apperrors.ErrSymptomNotFound)
}

func TestUpdateSymptomOwnership(t *testing.T) {
	t.Run("missing symptom is not found", func(t *testing.T) {
		repo := &mockSymptomRepo{
			GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) {
				return 0, apperrors.ErrSymptomNotFound
			},
		}
		svc := newTestSymptomService(repo)

		_, err := svc.UpdateSymptom(context.Background(), 7, 5, &dto.UpdateSymptomRequest{})
		assert.ErrorIs(t, err, apperrors.ErrSymptomNotFound)
	})

	t.Run("foreign symptom write is forbidden, not hidden", func(t *testing.T) {
		repo := &mockSymptomRepo{
			GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) {
				return 99, nil
			},
		}
		svc := newTestSymptomService(repo)

		_, err := svc.UpdateSymptom(context.Background(), 7, 5, &dto.UpdateSymptomRequest{})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		err = svc.DeleteSymptom(context.Background(), 7, 5)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUpdateSymptomPartialFields(t *testing.T) {
	var updatedFields map[string]interface{}
	current := &models.Symptom{ID: 5, UserID: 7, Name: "Headache", Severity: 6}
	repo := &mockSymptomRepo{
		GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
		UpdateFn: func(ctx context.Context, id int64, fields map[string]interface{}) error {
			updatedFields = fields
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Symptom, error) { return current, nil },
	}
	svc := newTestSymptomService(repo)

	req := &dto.UpdateSymptomRequest{}
	severity := 3
	req.Severity = dto.Optional[int]{Present: true, Value: &severity}
	req.Description = dto.Optional[string]{Present: true, Value: nil} // explicit null clears

	_, err := svc.UpdateSymptom(context.Background(), 7, 5, req)
	require.NoError(t, err)

	assert.Equal(t, 3, updatedFields["severity"])
	desc, ok := updatedFields["description"]
	assert.True(t, ok)
	assert.Nil(t, desc)
	assert.NotContains(t, updatedFields, "name")
}

func TestUpdateSymptomBlankName(t *testing.T) {
	repo := &mockSymptomRepo{
		GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
	}
	svc := newTestSymptomService(repo)

	name := "   "
	req := &dto.UpdateSymptomRequest{Name: dto.Optional[string]{Present: true, Value: &name}}
	_, err := svc.UpdateSymptom(context.Background(), 7, 5, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateSymptomSeverityBounds(t *testing.T) {
	repo := &mockSymptomRepo{
		GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
	}
	svc := newTestSymptomService(repo)

	severity := 11
	req := &dto.UpdateSymptomRequest{Severity: dto.Optional[int]{Present: true, Value: &severity}}
	_, err := svc.UpdateSymptom(context.Background(), 7, 5, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
