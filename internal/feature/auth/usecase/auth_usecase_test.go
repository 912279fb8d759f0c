package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/shared/apperr"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

// mockTokenManager is a mock implementation of the TokenManager interface.
type mockTokenManager struct {
	GenerateTokenFunc func(userID string) (string, error)
	ParseTokenFunc    func(token string) (string, error)
}

func (m *mockTokenManager) GenerateToken(userID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

func (m *mockTokenManager) ParseToken(token string) (string, error) {
	if m.ParseTokenFunc != nil {
		return m.ParseTokenFunc(token)
	}
	return "", errors.New("invalid token")
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				created = user
				return nil
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

		err := uc.Signup(context.Background(), " alice ", "  Alice@Example.COM ", "secret1")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "alice@example.com", created.Email, "email must be normalized")
		assert.NotEqual(t, "secret1", created.Password, "password is not hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")), "invalid bcrypt hash")
	})

	tests := []struct {
		name     string
		username string
		email    string
		password string
		expected error
	}{
		{"missing username", " ", "a@example.com", "secret1", ErrMissingFields},
		{"missing email", "alice", "", "secret1", ErrMissingFields},
		{"missing password", "alice", "a@example.com", "", ErrMissingFields},
		{"short password", "alice", "a@example.com", "12345", ErrPasswordTooShort},
		{"password over 72 bytes", "alice", "a@example.com", strings.Repeat("x", 73), ErrPasswordTooLong},
		{"multibyte password over 72 bytes", "alice", "a@example.com", strings.Repeat("é", 37), ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run("validation: "+tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				CreateFunc: func(user *entity.User) error {
					t.Fatal("Create must not be called")
					return nil
				},
			}
			uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

			err := uc.Signup(context.Background(), tt.username, tt.email, tt.password)

			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
		})
	}

	t.Run("72 byte password is accepted", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenManager{})

		assert.NoError(t, uc.Signup(context.Background(), "alice", "a@example.com", strings.Repeat("x", 72)))
	})

	t.Run("six character password is accepted", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenManager{})

		assert.NoError(t, uc.Signup(context.Background(), "alice", "a@example.com", "123456"))
	})

	t.Run("email already exists", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				return &entity.User{ID: "u1", Email: email}, nil
			},
			CreateFunc: func(user *entity.User) error {
				t.Fatal("Create must not be called")
				return nil
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

		err := uc.Signup(context.Background(), "alice", "ALICE@example.com", "secret1")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				return apperr.Wrap(apperr.Conflict, ErrEmailAlreadyExists.Message, errors.New("duplicate key"))
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

		err := uc.Signup(context.Background(), "alice", "a@example.com", "secret1")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("store failure while checking email", func(t *testing.T) {
		dbErr := errors.New("db down")
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) { return nil, dbErr },
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

		err := uc.Signup(context.Background(), "alice", "a@example.com", "secret1")

		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	stored := &entity.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	stored.Password = hashed(t, "secret1")

	newRepo := func() *mockUserRepository {
		return &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				if email == "alice@example.com" {
					return stored, nil
				}
				return nil, ErrUserNotFound
			},
		}
	}

	t.Run("successful login", func(t *testing.T) {
		var subject string
		tokens := &mockTokenManager{GenerateTokenFunc: func(userID string) (string, error) {
			subject = userID
			return "signed", nil
		}}
		uc := NewAuthUsecase(newRepo(), tokens)

		token, user, err := uc.Login(context.Background(), " ALICE@example.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "signed", token)
		assert.Equal(t, "u1", subject, "token subject must be the user ID")
		assert.Equal(t, stored, user)
	})

	t.Run("user not found", func(t *testing.T) {
		uc := NewAuthUsecase(newRepo(), &mockTokenManager{})

		_, _, err := uc.Login(context.Background(), "bob@example.com", "secret1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc := NewAuthUsecase(newRepo(), &mockTokenManager{})

		token, _, err := uc.Login(context.Background(), "alice@example.com", "wrong1")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("token generation failure", func(t *testing.T) {
		tokens := &mockTokenManager{GenerateTokenFunc: func(string) (string, error) {
			return "", errors.New("no secret")
		}}
		uc := NewAuthUsecase(newRepo(), tokens)

		_, _, err := uc.Login(context.Background(), "alice@example.com", "secret1")

		assert.Error(t, err)
		assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	})
}

func TestAuthUsecase_VerifyToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		tokens := &mockTokenManager{ParseTokenFunc: func(token string) (string, error) { return "u1", nil }}
		uc := NewAuthUsecase(&mockUserRepository{}, tokens)

		userID, err := uc.VerifyToken(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("invalid token", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenManager{})

		_, err := uc.VerifyToken(context.Background(), "garbage")

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	})

	t.Run("empty subject", func(t *testing.T) {
		tokens := &mockTokenManager{ParseTokenFunc: func(token string) (string, error) { return "", nil }}
		uc := NewAuthUsecase(&mockUserRepository{}, tokens)

		_, err := uc.VerifyToken(context.Background(), "tok")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthUsecase_CurrentUser(t *testing.T) {
	mockRepo := &mockUserRepository{
		FindByIDFunc: func(id string) (*entity.User, error) {
			if id == "u1" {
				return &entity.User{ID: "u1", Username: "alice"}, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := NewAuthUsecase(mockRepo, &mockTokenManager{})

	user, err := uc.CurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = uc.CurrentUser(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
