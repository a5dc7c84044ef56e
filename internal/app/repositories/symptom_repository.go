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

// ISymptomRepository defines the interface for symptom database operations
type ISymptomRepository interface {
	Create(ctx context.Context, symptom *models.Symptom) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Symptom, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*models.Symptom, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// SymptomRepository handles database operations for Symptom
type SymptomRepository struct {
	DB *pgxpool.Pool
}

// NewSymptomRepository creates a new SymptomRepository
func NewSymptomRepository(db *pgxpool.Pool) *SymptomRepository {
	return &SymptomRepository{DB: db}
}

var symptomColumns = []string{
	"id", "user_id", "name", "severity", "description", "duration",
	"triggers", "date_reported", "is_active", "created_at", "updated_at",
}

func (r *SymptomRepository) selectSymptomQuery() squirrel.SelectBuilder {
	return squirrel.Select(symptomColumns...).
		From("symptoms").
		PlaceholderFormat(squirrel.Dollar)
}

func scanSymptom(row pgx.Row) (*models.Symptom, error) {
	var s models.Symptom
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Severity, &s.Description, &s.Duration,
		&s.Triggers, &s.DateReported, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSymptomNotFound
		}
		logger.Error().Err(err).Msg("Error scanning symptom row")
		return nil, err
	}
	return &s, nil
}

// Create inserts a new symptom and returns its ID
func (r *SymptomRepository) Create(ctx context.Context, symptom *models.Symptom) (int64, error) {
	sqlStr, args, err := squirrel.Insert("symptoms").
		Columns("user_id", "name", "severity", "description", "duration",
			"triggers", "date_reported", "is_active").
		Values(symptom.UserID, symptom.Name, symptom.Severity, symptom.Description,
			symptom.Duration, symptom.Triggers, symptom.DateReported, symptom.IsActive).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create symptom SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create symptom query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single symptom by its ID
func (r *SymptomRepository) GetByID(ctx context.Context, id int64) (*models.Symptom, error) {
	sqlStr, args, err := r.selectSymptomQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get symptom by ID SQL")
		return nil, err
	}
	return scanSymptom(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAllByUserID retrieves every symptom of a user, newest report first
func (r *SymptomRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*models.Symptom, error) {
	sqlStr, args, err := r.selectSymptomQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date_reported DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list symptoms SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list symptoms query")
		return nil, err
	}
	defer rows.Close()

	symptoms := make([]*models.Symptom, 0)
	for rows.Next() {
		s, err := scanSymptom(rows)
		if err != nil {
			return nil, err
		}
		symptoms = append(symptoms, s)
	}
	return symptoms, rows.Err()
}

// Update applies the given column values to a symptom row
func (r *SymptomRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	sqlStr, args, err := squirrel.Update("symptoms").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update symptom SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update symptom query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSymptomNotFound
	}
	return nil
}

// Delete removes a symptom row
func (r *SymptomRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("symptoms").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete symptom SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete symptom query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSymptomNotFound
	}
	return nil
}

// GetOwnerID returns the owning user ID of a symptom
func (r *SymptomRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("user_id").
		From("symptoms").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get symptom owner SQL")
		return 0, err
	}

	var ownerID int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&ownerID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrSymptomNotFound
		}
		logger.Error().Err(err).Msg("Error executing get symptom owner query")
		return 0, err
	}
	return ownerID, nil
}
