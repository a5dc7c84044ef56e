package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/logger"
)

// IMedicationRepository defines the interface for medication database operations
type IMedicationRepository interface {
	Create(ctx context.Context, medication *models.Medication) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Medication, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*models.Medication, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// MedicationRepository handles database operations for Medication.
// Reminders are stored as a JSONB column; pgx handles the struct slice
// round trip natively.
type MedicationRepository struct {
	DB *pgxpool.Pool
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *pgxpool.Pool) *MedicationRepository {
	return &MedicationRepository{DB: db}
}

var medicationColumns = []string{
	"id", "user_id", "name", "dosage", "frequency", "start_date", "end_date",
	"purpose", "instructions", "is_active", "side_effects", "reminders",
	"created_at", "updated_at",
}

func (r *MedicationRepository) selectMedicationQuery() squirrel.SelectBuilder {
	return squirrel.Select(medicationColumns...).
		From("medications").
		PlaceholderFormat(squirrel.Dollar)
}

func scanMedication(row pgx.Row) (*models.Medication, error) {
	var m models.Medication
	err := row.Scan(
		&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &m.StartDate,
		&m.EndDate, &m.Purpose, &m.Instructions, &m.IsActive, &m.SideEffects,
		&m.Reminders, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMedicationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning medication row")
		return nil, err
	}
	return &m, nil
}

// Create inserts a new medication and returns its ID
func (r *MedicationRepository) Create(ctx context.Context, medication *models.Medication) (int64, error) {
	sqlStr, args, err := squirrel.Insert("medications").
		Columns("user_id", "name", "dosage", "frequency", "start_date", "end_date",
			"purpose", "instructions", "is_active", "side_effects", "reminders").
		Values(medication.UserID, medication.Name, medication.Dosage, medication.Frequency,
			medication.StartDate, medication.EndDate, medication.Purpose,
			medication.Instructions, medication.IsActive, medication.SideEffects,
			medication.Reminders).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create medication SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create medication query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single medication by its ID
func (r *MedicationRepository) GetByID(ctx context.Context, id int64) (*models.Medication, error) {
	sqlStr, args, err := r.selectMedicationQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get medication by ID SQL")
		return nil, err
	}
	return scanMedication(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAllByUserID retrieves every medication of a user, newest start first
func (r *MedicationRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*models.Medication, error) {
	sqlStr, args, err := r.selectMedicationQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list medications SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list medications query")
		return nil, err
	}
	defer rows.Close()

	medications := make([]*models.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}

// Update applies the given column values to a medication row
func (r *MedicationRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	sqlStr, args, err := squirrel.Update("medications").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update medication SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update medication query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMedicationNotFound
	}
	return nil
}

// Delete removes a medication row
func (r *MedicationRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("medications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete medication SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete medication query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMedicationNotFound
	}
	return nil
}

// GetOwnerID returns the owning user ID of a medication
func (r *MedicationRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("user_id").
		From("medications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get medication owner SQL")
		return 0, err
	}

	var ownerID int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&ownerID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrMedicationNotFound
		}
		logger.Error().Err(err).Msg("Error executing get medication owner query")
		return 0, err
	}
	return ownerID, nil
}
