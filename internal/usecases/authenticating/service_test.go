package authenticating

import (
	"testing"
	"time"

	"github.com/hostfolio/property-dashboard-api/infrastructure/repository/mocks"
	"github.com/hostfolio/property-dashboard-api/internal/config"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		Auth:     config.Auth{Secret: "test-secret"},
		Location: time.UTC,
	}
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authTestConfig())

	activeUser := &domain.User{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hashedPassword(t, "correct-password"),
		Active:       true,
		RoleID:       domain.RoleAdmin,
	}

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("alice@example.com").Return(activeUser, nil)

		token, err := service.LoginUser("Alice@Example.com ", "correct-password")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("alice@example.com").Return(activeUser, nil)

		_, err := service.LoginUser("alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("ghost@example.com").Return(nil, nil)

		_, err := service.LoginUser("ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("disabled account", func(t *testing.T) {
		disabled := *activeUser
		disabled.Active = false
		mockUserRepo.EXPECT().GetUserByEmail("alice@example.com").Return(&disabled, nil)

		_, err := service.LoginUser("alice@example.com", "correct-password")
		assert.ErrorIs(t, err, ErrUserDisabled)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 1, authErr.UserID)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := service.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authTestConfig())

	t.Run("hashes password and defaults role to viewer", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("bob@example.com").Return(nil, nil)

		var created *domain.User
		mockUserRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
			created = u
			return u, nil
		})

		_, err := service.CreateUser(&domain.User{
			Name:         "Bob",
			Lastname:     "Jones",
			Email:        "Bob@Example.com",
			PasswordHash: "plaintext-password",
		})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, "bob@example.com", created.Email)
		assert.Equal(t, domain.RoleViewer, created.RoleID)
		assert.False(t, created.Active, "new accounts start disabled")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("plaintext-password")))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("bob@example.com").Return(&domain.User{ID: 2}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Bob",
			Lastname:     "Jones",
			Email:        "bob@example.com",
			PasswordHash: "plaintext-password",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := service.CreateUser(&domain.User{Email: "only@example.com"})
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken_RejectsForgedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)

	service := NewService(mockUserRepo, authTestConfig())
	otherService := NewService(mockUserRepo, &config.Config{
		Auth:     config.Auth{Secret: "different-secret"},
		Location: time.UTC,
	})

	user := &domain.User{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: hashedPassword(t, "pw"),
		Active:       true,
	}
	mockUserRepo.EXPECT().GetUserByEmail("alice@example.com").Return(user, nil)

	token, err := service.LoginUser("alice@example.com", "pw")
	require.NoError(t, err)

	_, err = otherService.ValidateToken(token)
	assert.Error(t, err, "token signed with another secret must be rejected")
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockUserRepository(ctrl), authTestConfig())

	assert.NoError(t, service.ValidatePasswordStrength("Str0ng!Pass"))
	assert.Error(t, service.ValidatePasswordStrength("short"))
	assert.Error(t, service.ValidatePasswordStrength("alllowercase1!"))
	assert.Error(t, service.ValidatePasswordStrength("NoDigits!!"))
}
