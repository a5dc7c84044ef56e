package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/app/repositories"
	"github.com/salus-app/salus-backend/internal/config"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/auth"
	"github.com/salus-app/salus-backend/internal/pkg/email"
	"github.com/salus-app/salus-backend/internal/pkg/logger"
)

const (
	verificationTokenLength = 32
	verificationTokenTTL    = 24 * time.Hour
	resetTokenLength        = 32
	resetTokenTTL           = time.Hour
)

// AuthService handles registration, login and the email-driven account flows
type AuthService struct {
	userRepo     repositories.IUserRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	cfg          *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		emailService: emailService,
		cfg:          cfg,
	}
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// Register creates a new account, issues a session token immediately and
// sends the verification email in the background. A failed or slow mail
// delivery never fails the registration.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = models.LanguageItalian
	}

	token, err := auth.GenerateSecureToken(verificationTokenLength)
	if err != nil {
		return nil, fmt.Errorf("error generating verification token: %w", err)
	}
	expires := time.Now().Add(verificationTokenTTL)

	user := &models.User{
		Email:                    normalizeEmail(req.Email),
		Password:                 hashedPassword,
		Name:                     strings.TrimSpace(req.Name),
		Language:                 language,
		Role:                     models.RoleUser,
		IsEmailVerified:          false,
		EmailVerificationToken:   &token,
		EmailVerificationExpires: &expires,
		MedicalConditions:        []string{},
		Allergies:                []string{},
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created user: %w", err)
	}

	s.sendVerificationEmailAsync(created.Email, created.Name, token)

	sessionToken, _, err := s.jwtService.GenerateToken(created.ID)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	return &dto.AuthResponse{
		Token:   sessionToken,
		User:    dto.NewUserResponse(created),
		Message: "Registration successful. Please check your email to verify your account.",
	}, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password return the identical error so the response cannot be used to
// enumerate accounts. In production mode unverified accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if s.cfg.IsProduction() && !user.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	sessionToken, _, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	return &dto.AuthResponse{
		Token: sessionToken,
		User:  dto.NewUserResponse(user),
	}, nil
}

// VerifyEmail consumes a verification token and marks the account verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByVerificationToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidEmailToken
		}
		return err
	}
	return s.userRepo.MarkEmailVerified(ctx, user.ID)
}

// ResendVerification issues a fresh verification token. For an unknown email
// it still reports success so the endpoint cannot be used to enumerate
// accounts; an already verified account is reported as such, which is an
// accepted information leak.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	token, err := auth.GenerateSecureToken(verificationTokenLength)
	if err != nil {
		return fmt.Errorf("error generating verification token: %w", err)
	}
	if err := s.userRepo.SetVerificationToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}

	s.sendVerificationEmailAsync(user.Email, user.Name, token)
	return nil
}

// ForgotPassword starts the reset flow. Like ResendVerification it reports
// success for unknown emails.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := auth.GenerateSecureToken(resetTokenLength)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		}
	}()
	return nil
}

// ResetPassword consumes a reset token and stores the new password. The
// confirmation email is best effort; its failure does not undo the reset.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordChangedEmail(user.Email, user.Name); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send password changed email")
	}
	return nil
}

// ChangePassword changes the password of an authenticated user after
// re-checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword)
}

// GetProfile returns the authenticated user's own safe view
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if name, ok := req.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Language.Present {
		if lang, ok := req.Language.Get(); ok {
			if !models.ValidLanguage(lang) {
				return nil, apperrors.NewValidationError("unsupported language")
			}
			fields["language"] = lang
		}
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

	if err := s.userRepo.Update(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *AuthService) sendVerificationEmailAsync(toEmail, toName, token string) {
	go func() {
		if err := s.emailService.SendVerificationEmail(toEmail, toName, token); err != nil {
			logger.Error().Err(err).Str("email", toEmail).Msg("Failed to send verification email")
		}
	}()
}
