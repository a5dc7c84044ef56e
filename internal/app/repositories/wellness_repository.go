package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/dberrors"
	"github.com/salus-app/salus-backend/internal/pkg/logger"
)

// IWellnessRepository defines the interface for wellness log database operations
type IWellnessRepository interface {
	Create(ctx context.Context, log *models.WellnessLog) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.WellnessLog, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]*models.WellnessLog, error)
	GetByUserIDSince(ctx context.Context, userID int64, since time.Time) ([]*models.WellnessLog, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// WellnessRepository handles database operations for WellnessLog
type WellnessRepository struct {
	DB *pgxpool.Pool
}

// NewWellnessRepository creates a new WellnessRepository
func NewWellnessRepository(db *pgxpool.Pool) *WellnessRepository {
	return &WellnessRepository{DB: db}
}

var wellnessColumns = []string{
	"id", "user_id", "date", "mood", "energy", "sleep_hours", "sleep_quality",
	"nutrition_quality", "nutrition_hydration", "stress", "physical_activity",
	"notes", "created_at", "updated_at",
}

func (r *WellnessRepository) selectWellnessQuery() squirrel.SelectBuilder {
	return squirrel.Select(wellnessColumns...).
		From("wellness_logs").
		PlaceholderFormat(squirrel.Dollar)
}

func scanWellnessLog(row pgx.Row) (*models.WellnessLog, error) {
	var w models.WellnessLog
	err := row.Scan(
		&w.ID, &w.UserID, &w.Date, &w.Mood, &w.Energy, &w.SleepHours,
		&w.SleepQuality, &w.NutritionQuality, &w.NutritionHydration, &w.Stress,
		&w.PhysicalActivity, &w.Notes, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrWellnessLogNotFound
		}
		logger.Error().Err(err).Msg("Error scanning wellness log row")
		return nil, err
	}
	return &w, nil
}

// Create inserts a new wellness log and returns its ID. The unique constraint
// on (user_id, date) maps to apperrors.ErrDuplicateWellnessDate, which also
// settles concurrent inserts for the same day.
func (r *WellnessRepository) Create(ctx context.Context, log *models.WellnessLog) (int64, error) {
	sqlStr, args, err := squirrel.Insert("wellness_logs").
		Columns("user_id", "date", "mood", "energy", "sleep_hours", "sleep_quality",
			"nutrition_quality", "nutrition_hydration", "stress", "physical_activity", "notes").
		Values(log.UserID, log.Date, log.Mood, log.Energy, log.SleepHours,
			log.SleepQuality, log.NutritionQuality, log.NutritionHydration,
			log.Stress, log.PhysicalActivity, log.Notes).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create wellness log SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateWellnessDate
		}
		logger.Error().Err(err).Msg("Error executing create wellness log query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single wellness log by its ID
func (r *WellnessRepository) GetByID(ctx context.Context, id int64) (*models.WellnessLog, error) {
	sqlStr, args, err := r.selectWellnessQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get wellness log by ID SQL")
		return nil, err
	}
	return scanWellnessLog(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAllByUserID retrieves every wellness log of a user, newest date first
func (r *WellnessRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*models.WellnessLog, error) {
	sqlStr, args, err := r.selectWellnessQuery().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list wellness logs SQL")
		return nil, err
	}
	return r.queryWellnessLogs(ctx, sqlStr, args)
}

// GetByUserIDSince retrieves a user's wellness logs on or after the given
// instant, oldest first, for statistics windows.
func (r *WellnessRepository) GetByUserIDSince(ctx context.Context, userID int64, since time.Time) ([]*models.WellnessLog, error) {
	sqlStr, args, err := r.selectWellnessQuery().
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": since}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building wellness stats window SQL")
		return nil, err
	}
	return r.queryWellnessLogs(ctx, sqlStr, args)
}

func (r *WellnessRepository) queryWellnessLogs(ctx context.Context, sqlStr string, args []interface{}) ([]*models.WellnessLog, error) {
	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing wellness logs query")
		return nil, err
	}
	defer rows.Close()

	logs := make([]*models.WellnessLog, 0)
	for rows.Next() {
		w, err := scanWellnessLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// Update applies the given column values to a wellness log row
func (r *WellnessRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	sqlStr, args, err := squirrel.Update("wellness_logs").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update wellness log SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateWellnessDate
		}
		logger.Error().Err(err).Msg("Error executing update wellness log query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrWellnessLogNotFound
	}
	return nil
}

// Delete removes a wellness log row
func (r *WellnessRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("wellness_logs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete wellness log SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete wellness log query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrWellnessLogNotFound
	}
	return nil
}

// GetOwnerID returns the owning user ID of a wellness log
func (r *WellnessRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("user_id").
		From("wellness_logs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get wellness log owner SQL")
		return 0, err
	}

	var ownerID int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&ownerID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrWellnessLogNotFound
		}
		logger.Error().Err(err).Msg("Error executing get wellness log owner query")
		return 0, err
	}
	return ownerID, nil
}
