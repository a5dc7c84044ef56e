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

func newTestMedicationService(medicationRepo *mockMedicationRepo) *MedicationService {
	authz := appauth.NewAuthorizationService(&mockSymptomRepo{}, medicationRepo, &mockWellnessRepo{})
	return NewMedicationService(medicationRepo, authz)
}

func TestMedicationIsCurrentlyActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		isActive bool
		endDate  *time.Time
		want     bool
	}{
		{"flag set, no end date", true, nil, true},
		{"flag set, future end date", true, &future, true},
		{"flag set, past end date", true, &past, false},
		{"flag cleared, no end date", false, nil, false},
		{"flag cleared, future end date", false, &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.Medication{IsActive: tt.isActive, EndDate: tt.endDate}
			assert.Equal(t, tt.want, m.IsCurrentlyActive(now))
		})
	}
}

func TestGetActiveMedications(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	repo := &mockMedicationRepo{
		GetAllByUserIDFn: func(ctx context.Context, userID int64) ([]*models.Medication, error) {
			return []*models.Medication{
				{ID: 1, IsActive: true},
				{ID: 2, IsActive: true, EndDate: &past},
				{ID: 3, IsActive: false},
				{ID: 4, IsActive: true, EndDate: &future},
			}, nil
		},
	}
	svc := newTestMedicationService(repo)

	active, err := svc.GetActiveMedications(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(4), active[1].ID)
}

func TestCreateMedicationValidatesDates(t *testing.T) {
	svc := newTestMedicationService(&mockMedicationRepo{})

	start := time.Now()
	end := start.Add(-48 * time.Hour)
	_, err := svc.CreateMedication(context.Background(), 7, &dto.CreateMedicationRequest{
		Name:      "Ibuprofen",
		Dosage:    "200mg",
		Frequency: "twice daily",
		StartDate: start,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateMedicationDefaults(t *testing.T) {
	var created *models.Medication
	repo := &mockMedicationRepo{
		CreateFn: func(ctx context.Context, medication *models.Medication) (int64, error) {
			medication.ID = 1
			created = medication
			return 1, nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Medication, error) { return created, nil },
	}
	svc := newTestMedicationService(repo)

	medication, err := svc.CreateMedication(context.Background(), 7, &dto.CreateMedicationRequest{
		Name:      "  Ibuprofen ",
		Dosage:    " 200mg ",
		Frequency: " twice daily ",
		StartDate: time.Now(),
		Reminders: []dto.ReminderRequest{{Time: "08:00"}},
	})
	require.NoError(t, err)
	assert.True(t, medication.IsActive)
	assert.Equal(t, "Ibuprofen", medication.Name)
	assert.Equal(t, "200mg", medication.Dosage)
	assert.Equal(t, "twice daily", medication.Frequency)
	assert.Equal(t, []string{}, medication.SideEffects)
	require.Len(t, medication.Reminders, 1)
	assert.True(t, medication.Reminders[0].Enabled) // enabled defaults true
}

func TestCreateMedicationRejectsBlankFields(t *testing.T) {
	svc := newTestMedicationService(&mockMedicationRepo{})

	_, err := svc.CreateMedication(context.Background(), 7, &dto.CreateMedicationRequest{
		Name:      "   ",
		Dosage:    "200mg",
		Frequency: "twice daily",
		StartDate: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateMedicationTrimsAndRejectsBlanks(t *testing.T) {
	t.Run("blank dosage", func(t *testing.T) {
		repo := &mockMedicationRepo{
			GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
		}
		svc := newTestMedicationService(repo)

		dosage := "  "
		req := &dto.UpdateMedicationRequest{Dosage: dto.Optional[string]{Present: true, Value: &dosage}}
		_, err := svc.UpdateMedication(context.Background(), 7, 5, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("name stored trimmed", func(t *testing.T) {
		var updatedFields map[string]interface{}
		current := &models.Medication{ID: 5, UserID: 7}
		repo := &mockMedicationRepo{
			GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
			UpdateFn: func(ctx context.Context, id int64, fields map[string]interface{}) error {
				updatedFields = fields
				return nil
			},
			GetByIDFn: func(ctx context.Context, id int64) (*models.Medication, error) { return current, nil },
		}
		svc := newTestMedicationService(repo)

		name := " Paracetamol  "
		req := &dto.UpdateMedicationRequest{Name: dto.Optional[string]{Present: true, Value: &name}}
		_, err := svc.UpdateMedication(context.Background(), 7, 5, req)
		require.NoError(t, err)
		assert.Equal(t, "Paracetamol", updatedFields["name"])
	})
}

func TestUpdateMedicationClearsEndDate(t *testing.T) {
	var updatedFields map[string]interface{}
	endDate := time.Now().Add(24 * time.Hour)
	current := &models.Medication{ID: 5, UserID: 7, EndDate: &endDate}
	repo := &mockMedicationRepo{
		GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
		UpdateFn: func(ctx context.Context, id int64, fields map[string]interface{}) error {
			updatedFields = fields
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.Medication, error) { return current, nil },
	}
	svc := newTestMedicationService(repo)

	// Explicit null endDate marks the medication as ongoing again
	req := &dto.UpdateMedicationRequest{EndDate: dto.Optional[time.Time]{Present: true, Value: nil}}
	_, err := svc.UpdateMedication(context.Background(), 7, 5, req)
	require.NoError(t, err)

	value, ok := updatedFields["end_date"]
	assert.True(t, ok)
	assert.Nil(t, value)

	// An absent endDate leaves the column untouched
	updatedFields = nil
	_, err = svc.UpdateMedication(context.Background(), 7, 5, &dto.UpdateMedicationRequest{})
	require.NoError(t, err)
	assert.NotContains(t, updatedFields, "end_date")
}

func TestUpdateMedicationForeignOwner(t *testing.T) {
	repo := &mockMedicationRepo{
		GetOwnerIDFn: func(ctx context.Context, id int64) (int64, error) { return 99, nil },
	}
	svc := newTestMedicationService(repo)

	_, err := svc.UpdateMedication(context.Background(), 7, 5, &dto.UpdateMedicationRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
