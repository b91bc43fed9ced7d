package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rameshaqua/storefront/internal/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(nil).
		Once()

	u, err := svc.Register(context.Background(), "Ramesh", "Ramesh@Example.com", "secret123")

	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ramesh@example.com", u.Email, "email is normalized")

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123"))
	require.NoError(t, err, "password hash does not match raw password")
	require.NotEqual(t, "secret123", u.PasswordHash, "password must be hashed")

	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(user.ErrEmailExists).
		Once()

	_, err := svc.Register(context.Background(), "Ramesh", "dup@example.com", "secret123")

	require.ErrorIs(t, err, user.ErrEmailExists)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_EmptyPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	_, err := svc.Register(context.Background(), "Ramesh", "ramesh@example.com", "")

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           "u1",
		Email:        "ramesh@example.com",
		PasswordHash: string(hash),
	}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := user.NewService(mockRepo)

		mockRepo.On("GetByEmail", mock.Anything, "ramesh@example.com").
			Return(stored, nil).
			Once()

		u, err := svc.Login(context.Background(), "Ramesh@Example.com ", "secret123")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong_password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := user.NewService(mockRepo)

		mockRepo.On("GetByEmail", mock.Anything, "ramesh@example.com").
			Return(stored, nil).
			Once()

		_, err := svc.Login(context.Background(), "ramesh@example.com", "wrong")
		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown_email_hides_existence", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := user.NewService(mockRepo)

		mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, user.ErrNotFound).
			Once()

		_, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
		require.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
