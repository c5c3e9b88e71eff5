package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Helper
// =====================

type fixedID string

func (f fixedID) NewID() string { return string(f) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

func newRegister(users *MockUserRepository) *auth.RegisterUserUsecase {
	return auth.NewRegisterUserUsecase(users, auth.NewBcryptPasswordHasher(bcrypt.MinCost), fixedID("u-1"), fixedClock{testNow})
}

func newLogin(users *MockUserRepository) *auth.LoginUsecase {
	return auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), auth.NewJWTIssuer("test-secret", time.Hour), fixedClock{testNow})
}

// =====================
// Register
// =====================

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 保存されるユーザーが最低限正しい形かを見る
		return u.ID == "u-1" && u.Email == "rider@example.com" && u.IsActive &&
			u.Role == model.RoleUser && u.TokenVersion == 0 &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Sk8-or-die!")) == nil
	})).Return(nil)

	out, err := newRegister(users).Execute(context.Background(), auth.RegisterUserInput{
		Email:    "  Rider@Example.com ",
		Password: "Sk8-or-die!",
		Name:     "Rider",
	})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", out.User.Email)
	assert.Equal(t, testNow, out.User.CreatedAt)
	users.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(&model.User{Email: "rider@example.com"}, nil)

	_, err := newRegister(users).Execute(context.Background(), auth.RegisterUserInput{
		Email:    "rider@example.com",
		Password: "Sk8-or-die!",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Validation(t *testing.T) {
	users := new(MockUserRepository)

	_, err := newRegister(users).Execute(context.Background(), auth.RegisterUserInput{
		Email:    "not-an-email",
		Password: "password",
	})
	var fe validator.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "email")
	assert.Contains(t, fe, "password")
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// =====================
// Login
// =====================

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(&model.User{
		Base:         model.Base{ID: "u-1"},
		Email:        "rider@example.com",
		PasswordHash: mustHash(t, "Sk8-or-die!"),
		Role:         model.RoleUser,
		TokenVersion: 3,
		IsActive:     true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil && u.LastLoginAt.Equal(testNow)
	})).Return(nil)

	out, err := newLogin(users).Execute(context.Background(), auth.LoginInput{Email: "Rider@example.com", Password: "Sk8-or-die!"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.Token.ExpiresIn)
	assert.Equal(t, testNow.Add(time.Hour), out.Token.ExpiresAt)

	// 中身の確認（有効期限は固定時計なので検証しない）
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err = parser.ParseWithClaims(out.Token.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["sub"])
	assert.Equal(t, "USER", claims["role"])
	assert.Equal(t, float64(3), claims["tv"])
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "rider@example.com").Return(&model.User{
		PasswordHash: mustHash(t, "Sk8-or-die!"),
		IsActive:     true,
	}, nil)

	_, err := newLogin(users).Execute(context.Background(), auth.LoginInput{Email: "rider@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_UnknownAndInactive(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("FindByEmail", mock.Anything, "off@example.com").Return(&model.User{IsActive: false}, nil)

	uc := newLogin(users)
	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), auth.LoginInput{Email: "off@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

// =====================
// Logout
// =====================

func TestLogout_BumpsTokenVersion(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "u-1").Return(&model.User{Base: model.Base{ID: "u-1"}, TokenVersion: 4}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.TokenVersion == 5
	})).Return(nil)

	require.NoError(t, auth.NewLogoutUsecase(users).Execute(context.Background(), "u-1"))
	users.AssertExpectations(t)
}
