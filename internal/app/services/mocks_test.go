package services

import (
	"context"
	"time"

	"github.com/salus-app/salus-backend/internal/app/models"
)

// Function-field mocks: a nil field means the test does not expect the call.

type mockUserRepo struct {
	CreateFn                 func(ctx context.Context, user *models.User) (int64, error)
	GetByIDFn                func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFn             func(ctx context.Context, email string) (*models.User, error)
	UpdateFn                 func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn                 func(ctx context.Context, id int64) error
	GetByVerificationTokenFn func(ctx context.Context, token string, now time.Time) (*models.User, error)
	GetByResetTokenFn        func(ctx context.Context, token string, now time.Time) (*models.User, error)
	SetVerificationTokenFn   func(ctx context.Context, id int64, token string, expires time.Time) error
	MarkEmailVerifiedFn      func(ctx context.Context, id int64) error
	SetResetTokenFn          func(ctx context.Context, id int64, token string, expires time.Time) error
	UpdatePasswordFn         func(ctx context.Context, id int64, hashedPassword string) error
	UpdateLastLoginFn        func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockUserRepo) GetByVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return m.GetByVerificationTokenFn(ctx, token, now)
}
func (m *mockUserRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return m.GetByResetTokenFn(ctx, token, now)
}
func (m *mockUserRepo) SetVerificationToken(ctx context.Context, id int64, token string, expires time.Time) error {
	return m.SetVerificationTokenFn(ctx, id, token, expires)
}
func (m *mockUserRepo) MarkEmailVerified(ctx context.Context, id int64) error {
	return m.MarkEmailVerifiedFn(ctx, id)
}
func (m *mockUserRepo) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	return m.SetResetTokenFn(ctx, id, token, expires)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return m.UpdatePasswordFn(ctx, id, hashedPassword)
}
func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	if m.UpdateLastLoginFn == nil {
		return nil
	}
	return m.UpdateLastLoginFn(ctx, id)
}

type mockSymptomRepo struct {
	CreateFn         func(ctx context.Context, symptom *models.Symptom) (int64, error)
	GetByIDFn        func(ctx context.Context, id int64) (*models.Symptom, error)
	GetAllByUserIDFn func(ctx context.Context, userID int64) ([]*models.Symptom, error)
	UpdateFn         func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn         func(ctx context.Context, id int64) error
	GetOwnerIDFn     func(ctx context.Context, id int64) (int64, error)
}

func (m *mockSymptomRepo) Create(ctx context.Context, symptom *models.Symptom) (int64, error) {
	return m.CreateFn(ctx, symptom)
}
func (m *mockSymptomRepo) GetByID(ctx context.Context, id int64) (*models.Symptom, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockSymptomRepo) GetAllByUserID(ctx context.Context, userID int64) ([]*models.Symptom, error) {
	return m.GetAllByUserIDFn(ctx, userID)
}
func (m *mockSymptomRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockSymptomRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockSymptomRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	return m.GetOwnerIDFn(ctx, id)
}

type mockMedicationRepo struct {
	CreateFn         func(ctx context.Context, medication *models.Medication) (int64, error)
	GetByIDFn        func(ctx context.Context, id int64) (*models.Medication, error)
	GetAllByUserIDFn func(ctx context.Context, userID int64) ([]*models.Medication, error)
	UpdateFn         func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn         func(ctx context.Context, id int64) error
	GetOwnerIDFn     func(ctx context.Context, id int64) (int64, error)
}

func (m *mockMedicationRepo) Create(ctx context.Context, medication *models.Medication) (int64, error) {
	return m.CreateFn(ctx, medication)
}
func (m *mockMedicationRepo) GetByID(ctx context.Context, id int64) (*models.Medication, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockMedicationRepo) GetAllByUserID(ctx context.Context, userID int64) ([]*models.Medication, error) {
	return m.GetAllByUserIDFn(ctx, userID)
}
func (m *mockMedicationRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockMedicationRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockMedicationRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	return m.GetOwnerIDFn(ctx, id)
}

type mockWellnessRepo struct {
	CreateFn           func(ctx context.Context, log *models.WellnessLog) (int64, error)
	GetByIDFn          func(ctx context.Context, id int64) (*models.WellnessLog, error)
	GetAllByUserIDFn   func(ctx context.Context, userID int64) ([]*models.WellnessLog, error)
	GetByUserIDSinceFn func(ctx context.Context, userID int64, since time.Time) ([]*models.WellnessLog, error)
	UpdateFn           func(ctx context.Context, id int64, fields map[string]interface{}) error
	DeleteFn           func(ctx context.Context, id int64) error
	GetOwnerIDFn       func(ctx context.Context, id int64) (int64, error)
}

func (m *mockWellnessRepo) Create(ctx context.Context, log *models.WellnessLog) (int64, error) {
	return m.CreateFn(ctx, log)
}
func (m *mockWellnessRepo) GetByID(ctx context.Context, id int64) (*models.WellnessLog, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockWellnessRepo) GetAllByUserID(ctx context.Context, userID int64) ([]*models.WellnessLog, error) {
	return m.GetAllByUserIDFn(ctx, userID)
}
func (m *mockWellnessRepo) GetByUserIDSince(ctx context.Context, userID int64, since time.Time) ([]*models.WellnessLog, error) {
	return m.GetByUserIDSinceFn(ctx, userID, since)
}
func (m *mockWellnessRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.UpdateFn(ctx, id, fields)
}
func (m *mockWellnessRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockWellnessRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	return m.GetOwnerIDFn(ctx, id)
}

// mockEmailService records sends on channels so tests can wait for the
// fire-and-forget goroutines.
type mockEmailService struct {
	verificationSent chan string
	resetSent        chan string
	changedSent      chan string
}

func newMockEmailService() *mockEmailService {
	return &mockEmailService{
		verificationSent: make(chan string, 4),
		resetSent:        make(chan string, 4),
		changedSent:      make(chan string, 4),
	}
}

func (m *mockEmailService) SendVerificationEmail(toEmail, toName, token string) error {
	m.verificationSent <- token
	return nil
}

func (m *mockEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	m.resetSent <- token
	return nil
}

func (m *mockEmailService) SendPasswordChangedEmail(toEmail, toName string) error {
	m.changedSent <- toEmail
	return nil
}
