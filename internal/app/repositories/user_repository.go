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

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	GetByVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	SetVerificationToken(ctx context.Context, id int64, token string, expires time.Time) error
	MarkEmailVerified(ctx context.Context, id int64) error
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// UserRepository handles database operations for User
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

var userColumns = []string{
	"id", "email", "password", "name", "age", "gender", "language",
	"profile_picture", "role", "is_email_verified",
	"email_verification_token", "email_verification_expires",
	"reset_password_token", "reset_password_expires",
	"medical_conditions", "allergies", "last_login", "created_at", "updated_at",
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(userColumns...).
		From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Age,
		&user.Gender, &user.Language, &user.ProfilePicture, &user.Role,
		&user.IsEmailVerified, &user.EmailVerificationToken, &user.EmailVerificationExpires,
		&user.ResetPasswordToken, &user.ResetPasswordExpires,
		&user.MedicalConditions, &user.Allergies, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its ID. A duplicate email maps to
// apperrors.ErrEmailAlreadyExists via the unique constraint on users.email.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sqlStr, args, err := squirrel.Insert("users").
		Columns("email", "password", "name", "language", "role", "is_email_verified",
			"email_verification_token", "email_verification_expires",
			"medical_conditions", "allergies").
		Values(user.Email, user.Password, user.Name, user.Language, user.Role, user.IsEmailVerified,
			user.EmailVerificationToken, user.EmailVerificationExpires,
			user.MedicalConditions, user.Allergies).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetByEmail retrieves a user by email. Emails are stored lowercased, so the
// caller is expected to normalize before lookup.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// Update applies the given column values to a user row
func (r *UserRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	sqlStr, args, err := squirrel.Update("users").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing update user query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user row. Dependent symptom, medication and wellness rows
// are removed by ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete user SQL")
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete user query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetByVerificationToken retrieves the user holding an unexpired email
// verification token.
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().
		Where(squirrel.Eq{"email_verification_token": token}).
		Where(squirrel.Gt{"email_verification_expires": now}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by verification token SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetByResetToken retrieves the user holding an unexpired password reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().
		Where(squirrel.Eq{"reset_password_token": token}).
		Where(squirrel.Gt{"reset_password_expires": now}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by reset token SQL")
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// SetVerificationToken stores a new email verification token, replacing any
// previous one.
func (r *UserRepository) SetVerificationToken(ctx context.Context, id int64, token string, expires time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{
		"email_verification_token":   token,
		"email_verification_expires": expires,
	})
}

// MarkEmailVerified flags the user as verified and clears the token
func (r *UserRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"is_email_verified":          true,
		"email_verification_token":   nil,
		"email_verification_expires": nil,
	})
}

// SetResetToken stores a new password reset token, replacing any previous one
func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	})
}

// UpdatePassword stores a new password hash and invalidates any pending reset
// token.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"password":               hashedPassword,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	})
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"last_login": squirrel.Expr("NOW()"),
	})
}
