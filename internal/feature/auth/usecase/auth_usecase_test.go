package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"contact_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc       func(ctx context.Context, user *entity.User) error
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.User, error)
	SetConfirmedFunc func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) SetConfirmed(ctx context.Context, id uint) error {
	if m.SetConfirmedFunc != nil {
		return m.SetConfirmedFunc(ctx, id)
	}
	return nil
}

// mockSessionRepository is an in-memory SessionRepository.
type mockSessionRepository struct {
	sessions map[string]*entity.Session

	CreateFunc func(ctx context.Context, session *entity.Session) error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*entity.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
	parsedEmail       string
	parseErr          error
}

func (m *mockTokenIssuer) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-access-token", nil
}

func (m *mockTokenIssuer) GenerateEmailToken(email string) (string, error) {
	return "mock-email-token", nil
}

func (m *mockTokenIssuer) ParseEmailToken(token string) (string, error) {
	if m.parseErr != nil {
		return "", m.parseErr
	}
	return m.parsedEmail, nil
}

func testClient() ClientInfo {
	return ClientInfo{UserAgent: "test-agent", IPAddress: "127.0.0.1"}
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup hashes the password and returns a confirm token", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)
		token, err := uc.Signup(context.Background(), "test@example.com", "password123")

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if token != "mock-email-token" {
			t.Errorf("expected confirmation token, got %q", token)
		}
	})

	t.Run("short password is rejected before hitting the repository", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("repository should not be called for an invalid password")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)
		_, err := uc.Signup(context.Background(), "test@example.com", "short")

		if err == nil {
			t.Error("expected a validation error")
		}
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)
		_, err := uc.Signup(context.Background(), "test@example.com", "password123")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}
	findTestUser := func(ctx context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login issues an access token and a session", func(t *testing.T) {
		sessions := newMockSessionRepository()
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, sessions, &mockTokenIssuer{}, time.Hour)

		tokens, err := uc.Login(context.Background(), testUser.Email, password, testClient())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tokens.Access != "mock-access-token" {
			t.Errorf("unexpected access token: %q", tokens.Access)
		}
		if len(tokens.Refresh) != 64 {
			t.Errorf("expected 64-hex refresh token, got %d chars", len(tokens.Refresh))
		}
		session, err := sessions.FindByID(context.Background(), tokens.Refresh)
		if err != nil {
			t.Fatalf("session was not persisted: %v", err)
		}
		if session.UserID != testUser.ID {
			t.Errorf("session owner mismatch: %d", session.UserID)
		}
		if !session.IsValid() {
			t.Error("fresh session should be valid")
		}
	})

	t.Run("wrong password yields ErrInvalidCredentials", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)

		_, err := uc.Login(context.Background(), testUser.Email, "wrong-password", testClient())

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user yields the same generic error", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)

		_, err := uc.Login(context.Background(), "nobody@example.com", password, testClient())

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return &entity.User{ID: id, Email: "test@example.com"}, nil
		},
	}

	seedSession := func(sessions *mockSessionRepository, id string, expiresIn time.Duration) {
		now := time.Now()
		sessions.sessions[id] = &entity.Session{
			ID:        id,
			UserID:    1,
			CreatedAt: now,
			ExpiresAt: now.Add(expiresIn),
		}
	}

	t.Run("valid token rotates the session", func(t *testing.T) {
		sessions := newMockSessionRepository()
		seedSession(sessions, "old-token", time.Hour)

		uc := NewAuthUsecase(users, sessions, &mockTokenIssuer{}, time.Hour)
		tokens, err := uc.Refresh(context.Background(), "old-token", testClient())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tokens.Refresh == "old-token" {
			t.Error("refresh token was not rotated")
		}

		// The used token is revoked and cannot be replayed.
		if _, err := uc.Refresh(context.Background(), "old-token", testClient()); !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected replay to fail with ErrInvalidRefreshToken, got %v", err)
		}
	})

	t.Run("unknown token yields ErrInvalidRefreshToken", func(t *testing.T) {
		uc := NewAuthUsecase(users, newMockSessionRepository(), &mockTokenIssuer{}, time.Hour)

		_, err := uc.Refresh(context.Background(), "missing", testClient())

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
		}
	})

	t.Run("expired token yields ErrInvalidRefreshToken", func(t *testing.T) {
		sessions := newMockSessionRepository()
		seedSession(sessions, "stale", -time.Minute)

		uc := NewAuthUsecase(users, sessions, &mockTokenIssuer{}, time.Hour)
		_, err := uc.Refresh(context.Background(), "stale", testClient())

		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
		}
	})
}

func TestAuthUsecase_ConfirmEmail(t *testing.T) {
	t.Run("valid token confirms the user", func(t *testing.T) {
		confirmed := false
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 5, Email: email}, nil
			},
			SetConfirmedFunc: func(ctx context.Context, id uint) error {
				confirmed = id == 5
				return nil
			},
		}

		uc := NewAuthUsecase(users, newMockSessionRepository(), &mockTokenIssuer{parsedEmail: "test@example.com"}, time.Hour)
		err := uc.ConfirmEmail(context.Background(), "some-token")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !confirmed {
			t.Error("user was not confirmed")
		}
	})

	t.Run("already-confirmed user is a no-op", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 5, Email: email, Confirmed: true}, nil
			},
			SetConfirmedFunc: func(ctx context.Context, id uint) error {
				t.Error("SetConfirmed must not be called twice")
				return nil
			},
		}

		uc := NewAuthUsecase(users, newMockSessionRepository(), &mockTokenIssuer{parsedEmail: "test@example.com"}, time.Hour)
		if err := uc.ConfirmEmail(context.Background(), "some-token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid token propagates the parse error", func(t *testing.T) {
		parseErr := errors.New("bad token")
		uc := NewAuthUsecase(&mockUserRepository{}, newMockSessionRepository(), &mockTokenIssuer{parseErr: parseErr}, time.Hour)

		err := uc.ConfirmEmail(context.Background(), "garbage")

		if !errors.Is(err, parseErr) {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}
