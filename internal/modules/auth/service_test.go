package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"railbook/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && u.ID == "" {
		u.ID = "user-1"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type staticTokenIssuer struct{}

func (staticTokenIssuer) GenerateToken(userID, role string) (string, error) {
	return "token-" + userID + "-" + role, nil
}

func TestRegister(t *testing.T) {
	users := &MockUserRepository{}
	users.On("GetByEmail", mock.Anything, "adi@gmail.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(users, staticTokenIssuer{})

	result, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Adi",
		Email:    "Adi@Gmail.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Email is normalized and the password never stored in the clear.
	assert.Equal(t, "adi@gmail.com", result.User.Email)
	assert.Equal(t, domain.RoleCustomer, result.User.Role)
	assert.NotEqual(t, "supersecret", result.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("supersecret")))
	assert.Equal(t, "token-user-1-customer", result.Token)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := &MockUserRepository{}
	users.On("GetByEmail", mock.Anything, "adi@gmail.com").Return(&domain.User{ID: "existing"}, nil)

	svc := NewService(users, staticTokenIssuer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Adi",
		Email:    "adi@gmail.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &MockUserRepository{}
	users.On("GetByEmail", mock.Anything, "adi@gmail.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "adi@gmail.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}, nil)

	svc := NewService(users, staticTokenIssuer{})

	result, err := svc.Login(context.Background(), LoginRequest{Email: "adi@gmail.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "token-user-1-customer", result.Token)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "adi@gmail.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &MockUserRepository{}
	users.On("GetByEmail", mock.Anything, "ghost@gmail.com").Return(nil, nil)

	svc := NewService(users, staticTokenIssuer{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@gmail.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
