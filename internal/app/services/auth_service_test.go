package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salus-app/salus-backend/internal/app/models"
	"github.com/salus-app/salus-backend/internal/app/models/dto"
	"github.com/salus-app/salus-backend/internal/config"
	"github.com/salus-app/salus-backend/internal/pkg/apperrors"
	"github.com/salus-app/salus-backend/internal/pkg/auth"
)

func testConfig(mode string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = mode
	cfg.JWT.Secret = "test-secret"
	return cfg
}

func newTestAuthService(userRepo *mockUserRepo, emails *mockEmailService, mode string) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "salus.test",
	})
	return NewAuthService(userRepo, jwtService, emails, testConfig(mode))
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func waitForSend(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("expected an email send")
		return ""
	}
}

func TestRegister(t *testing.T) {
	stored := map[int64]*models.User{}
	userRepo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user *models.User) (int64, error) {
			user.ID = 1
			stored[1] = user
			return 1, nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
			return stored[id], nil
		},
	}
	emails := newMockEmailService()
	svc := newTestAuthService(userRepo, emails, "development")

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "  Ada Lovelace ",
		Email:    "Ada@Example.COM",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	assert.False(t, resp.User.IsEmailVerified)
	assert.Equal(t, models.LanguageItalian, resp.User.Language)

	created := stored[1]
	require.NotNil(t, created.EmailVerificationToken)
	assert.NotEqual(t, "strong-password", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "strong-password"))

	sentToken := waitForSend(t, emails.verificationSent)
	assert.Equal(t, *created.EmailVerificationToken, sentToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user *models.User) (int64, error) {
			return 0, apperrors.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(userRepo, newMockEmailService(), "development")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "strong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	user := &models.User{
		ID:              7,
		Email:           "ada@example.com",
		Password:        hashFor(t, "strong-password"),
		Name:            "Ada",
		IsEmailVerified: false,
	}

	lookup := func(ctx context.Context, email string) (*models.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, apperrors.ErrUserNotFound
	}

	t.Run("success", func(t *testing.T) {
		lastLoginUpdated := false
		userRepo := &mockUserRepo{
			GetByEmailFn: lookup,
			UpdateLastLoginFn: func(ctx context.Context, id int64) error {
				lastLoginUpdated = true
				return nil
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "ADA@example.com",
			Password: "strong-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(7), resp.User.ID)
		assert.True(t, lastLoginUpdated)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		userRepo := &mockUserRepo{GetByEmailFn: lookup}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		_, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "strong-password",
		})
		_, errWrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
	})

	t.Run("unverified email blocked in production only", func(t *testing.T) {
		userRepo := &mockUserRepo{GetByEmailFn: lookup}

		prod := newTestAuthService(userRepo, newMockEmailService(), "production")
		_, err := prod.Login(context.Background(), &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "strong-password",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

		dev := newTestAuthService(userRepo, newMockEmailService(), "development")
		_, err = dev.Login(context.Background(), &dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "strong-password",
		})
		assert.NoError(t, err)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		verified := false
		userRepo := &mockUserRepo{
			GetByVerificationTokenFn: func(ctx context.Context, token string, now time.Time) (*models.User, error) {
				if token == "good-token" {
					return &models.User{ID: 7}, nil
				}
				return nil, apperrors.ErrUserNotFound
			},
			MarkEmailVerifiedFn: func(ctx context.Context, id int64) error {
				verified = true
				return nil
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		require.NoError(t, svc.VerifyEmail(context.Background(), "good-token"))
		assert.True(t, verified)
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByVerificationTokenFn: func(ctx context.Context, token string, now time.Time) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		err := svc.VerifyEmail(context.Background(), "stale-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
	})
}

func TestResendVerification(t *testing.T) {
	t.Run("unknown email reports success", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		assert.NoError(t, svc.ResendVerification(context.Background(), "nobody@example.com"))
	})

	t.Run("already verified is reported", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: 7, Email: email, IsEmailVerified: true}, nil
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		err := svc.ResendVerification(context.Background(), "ada@example.com")
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
	})

	t.Run("rotates token and sends email", func(t *testing.T) {
		var storedToken string
		userRepo := &mockUserRepo{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: 7, Email: email, Name: "Ada"}, nil
			},
			SetVerificationTokenFn: func(ctx context.Context, id int64, token string, expires time.Time) error {
				storedToken = token
				assert.WithinDuration(t, time.Now().Add(24*time.Hour), expires, time.Minute)
				return nil
			},
		}
		emails := newMockEmailService()
		svc := newTestAuthService(userRepo, emails, "development")

		require.NoError(t, svc.ResendVerification(context.Background(), "ada@example.com"))
		assert.Equal(t, storedToken, waitForSend(t, emails.verificationSent))
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("unknown email reports success", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
	})

	t.Run("stores short-lived token and sends email", func(t *testing.T) {
		var storedToken string
		userRepo := &mockUserRepo{
			GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: 7, Email: email, Name: "Ada"}, nil
			},
			SetResetTokenFn: func(ctx context.Context, id int64, token string, expires time.Time) error {
				storedToken = token
				assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)
				return nil
			},
		}
		emails := newMockEmailService()
		svc := newTestAuthService(userRepo, emails, "development")

		require.NoError(t, svc.ForgotPassword(context.Background(), "ada@example.com"))
		assert.Equal(t, storedToken, waitForSend(t, emails.resetSent))
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("valid token stores new hash", func(t *testing.T) {
		var newHash string
		userRepo := &mockUserRepo{
			GetByResetTokenFn: func(ctx context.Context, token string, now time.Time) (*models.User, error) {
				return &models.User{ID: 7, Email: "ada@example.com", Name: "Ada"}, nil
			},
			UpdatePasswordFn: func(ctx context.Context, id int64, hashedPassword string) error {
				newHash = hashedPassword
				return nil
			},
		}
		emails := newMockEmailService()
		svc := newTestAuthService(userRepo, emails, "development")

		require.NoError(t, svc.ResetPassword(context.Background(), "reset-token", "new-password"))
		assert.True(t, auth.CheckPassword(newHash, "new-password"))
		assert.Equal(t, "ada@example.com", waitForSend(t, emails.changedSent))
	})

	t.Run("expired token", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByResetTokenFn: func(ctx context.Context, token string, now time.Time) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		err := svc.ResetPassword(context.Background(), "stale", "new-password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPasswordResetToken)
	})
}

func TestChangePassword(t *testing.T) {
	user := &models.User{ID: 7, Password: hashFor(t, "current-password")}

	t.Run("wrong current password", func(t *testing.T) {
		userRepo := &mockUserRepo{
			GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) { return user, nil },
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		err := svc.ChangePassword(context.Background(), 7, "nope", "new-password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		var newHash string
		userRepo := &mockUserRepo{
			GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) { return user, nil },
			UpdatePasswordFn: func(ctx context.Context, id int64, hashedPassword string) error {
				newHash = hashedPassword
				return nil
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		require.NoError(t, svc.ChangePassword(context.Background(), 7, "current-password", "new-password"))
		assert.True(t, auth.CheckPassword(newHash, "new-password"))
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("age out of range", func(t *testing.T) {
		svc := newTestAuthService(&mockUserRepo{}, newMockEmailService(), "development")

		age := 999
		req := &dto.UpdateProfileRequest{Age: dto.Optional[int]{Present: true, Value: &age}}
		_, err := svc.UpdateProfile(context.Background(), 7, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := newTestAuthService(&mockUserRepo{}, newMockEmailService(), "development")

		name := "   "
		req := &dto.UpdateProfileRequest{Name: dto.Optional[string]{Present: true, Value: &name}}
		_, err := svc.UpdateProfile(context.Background(), 7, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unsupported language", func(t *testing.T) {
		svc := newTestAuthService(&mockUserRepo{}, newMockEmailService(), "development")

		lang := models.Language("klingon")
		req := &dto.UpdateProfileRequest{Language: dto.Optional[models.Language]{Present: true, Value: &lang}}
		_, err := svc.UpdateProfile(context.Background(), 7, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("valid fields are trimmed and persisted", func(t *testing.T) {
		var updatedFields map[string]interface{}
		userRepo := &mockUserRepo{
			UpdateFn: func(ctx context.Context, id int64, fields map[string]interface{}) error {
				updatedFields = fields
				return nil
			},
			GetByIDFn: func(ctx context.Context, id int64) (*models.User, error) {
				return &models.User{ID: id, Name: "Anna Rossi"}, nil
			},
		}
		svc := newTestAuthService(userRepo, newMockEmailService(), "development")

		name := "  Anna Rossi  "
		age := 34
		req := &dto.UpdateProfileRequest{
			Name: dto.Optional[string]{Present: true, Value: &name},
			Age:  dto.Optional[int]{Present: true, Value: &age},
		}
		_, err := svc.UpdateProfile(context.Background(), 7, req)
		require.NoError(t, err)
		assert.Equal(t, "Anna Rossi", updatedFields["name"])
		assert.Equal(t, &age, updatedFields["age"])
	})
}
