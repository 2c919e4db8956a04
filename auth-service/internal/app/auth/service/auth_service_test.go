package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carenest/auth-service/internal/app/auth/entity"
	"carenest/auth-service/internal/app/auth/repository"
	"carenest/auth-service/internal/app/auth/repository/mocks"
	"carenest/auth-service/internal/app/auth/util"
)

func newTestAuthService() (*AuthService, *mocks.MockUserRepository, *mocks.MockRoleRepository, *mocks.MockTokenRepository) {
	userRepo := new(mocks.MockUserRepository)
	roleRepo := new(mocks.MockRoleRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	svc := NewAuthService(userRepo, roleRepo, tokenRepo, jwtManager)
	return svc, userRepo, roleRepo, tokenRepo
}

func TestRegister_Success(t *testing.T) {
	svc, userRepo, roleRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	req := &entity.RegisterRequest{
		Email:    "parent@example.com",
		Password: "secret-password",
		Name:     "Jane",
		Role:     "parent",
	}

	userRepo.On("GetByEmail", ctx, "parent@example.com").Return(nil, pgx.ErrNoRows)
	roleRepo.On("GetByName", ctx, "parent").Return(&entity.Role{ID: 1, Name: "parent"}, nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	tokenRepo.On("SaveRefreshToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "parent@example.com", resp.User.Email)
	assert.Equal(t, "parent", resp.User.Role.Name)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	// Пароль хранится только как bcrypt-хэш
	assert.NotEqual(t, "secret-password", resp.User.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestRegister_DefaultRoleIsParent(t *testing.T) {
	svc, userRepo, roleRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	req := &entity.RegisterRequest{
		Email:    "parent@example.com",
		Password: "secret-password",
		Name:     "Jane",
	}

	userRepo.On("GetByEmail", ctx, "parent@example.com").Return(nil, pgx.ErrNoRows)
	roleRepo.On("GetByName", ctx, "parent").Return(&entity.Role{ID: 1, Name: "parent"}, nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	tokenRepo.On("SaveRefreshToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Register(ctx, req)

	require.NoError(t, err)
	roleRepo.AssertCalled(t, "GetByName", ctx, "parent")
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "taken@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

	resp, err := svc.Register(ctx, &entity.RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
		Name:     "Jane",
	})

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, resp)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc, userRepo, roleRepo, _ := newTestAuthService()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "user@example.com").Return(nil, pgx.ErrNoRows)
	roleRepo.On("GetByName", ctx, "admin").Return(nil, pgx.ErrNoRows)

	resp, err := svc.Register(ctx, &entity.RegisterRequest{
		Email:    "user@example.com",
		Password: "secret-password",
		Name:     "Jane",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrRoleNotFound)
	assert.Nil(t, resp)
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, roleRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	hash, err := util.HashPassword("secret-password")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "parent@example.com",
		PasswordHash: hash,
		RoleID:       1,
	}

	userRepo.On("GetByEmail", ctx, "parent@example.com").Return(user, nil)
	roleRepo.On("GetByID", ctx, 1).Return(&entity.Role{ID: 1, Name: "parent"}, nil)
	tokenRepo.On("SaveRefreshToken", ctx, user.ID, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "parent@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	hash, err := util.HashPassword("secret-password")
	require.NoError(t, err)

	userRepo.On("GetByEmail", ctx, "parent@example.com").
		Return(&entity.User{ID: uuid.New(), PasswordHash: hash}, nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "parent@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestRefreshTokens_RotatesToken(t *testing.T) {
	svc, userRepo, roleRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()
	userID := uuid.New()

	tokenRepo.On("GetRefreshToken", ctx, "old-refresh").
		Return(&entity.RefreshToken{UserID: userID, Token: "old-refresh"}, nil)
	tokenRepo.On("DeleteRefreshToken", ctx, "old-refresh").Return(nil)
	userRepo.On("GetByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "parent@example.com", RoleID: 1}, nil)
	roleRepo.On("GetByID", ctx, 1).Return(&entity.Role{ID: 1, Name: "parent"}, nil)
	tokenRepo.On("SaveRefreshToken", ctx, userID, mock.Anything, mock.Anything).Return(nil)

	pair, err := svc.RefreshTokens(ctx, "old-refresh")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, "old-refresh", pair.RefreshToken)
	// Использованный refresh токен отзывается
	tokenRepo.AssertCalled(t, "DeleteRefreshToken", ctx, "old-refresh")
}

func TestRefreshTokens_Invalid(t *testing.T) {
	svc, _, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	tokenRepo.On("GetRefreshToken", ctx, "stale").
		Return(nil, repository.ErrRefreshTokenNotFound)

	pair, err := svc.RefreshTokens(ctx, "stale")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Nil(t, pair)
}

func TestLogout_BlacklistsAccessAndDropsRefresh(t *testing.T) {
	svc, _, _, tokenRepo := newTestAuthService()
	ctx := context.Background()
	userID := uuid.New()

	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	accessToken, err := jwtManager.GenerateAccessToken(userID, "parent@example.com", "parent")
	require.NoError(t, err)

	tokenRepo.On("AddToBlacklist", ctx, accessToken, mock.Anything).Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, userID).Return(nil)

	err = svc.Logout(ctx, userID, accessToken)

	require.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestValidateToken_Blacklisted(t *testing.T) {
	svc, _, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	tokenRepo.On("IsBlacklisted", ctx, "revoked-token").Return(true, nil)

	claims, err := svc.ValidateToken(ctx, "revoked-token")

	assert.ErrorIs(t, err, util.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestUpdatePassword_WrongOldPassword(t *testing.T) {
	svc, userRepo, _, tokenRepo := newTestAuthService()
	ctx := context.Background()
	userID := uuid.New()

	hash, err := util.HashPassword("secret-password")
	require.NoError(t, err)

	userRepo.On("GetByID", ctx, userID).
		Return(&entity.User{ID: userID, PasswordHash: hash}, nil)

	err = svc.UpdatePassword(ctx, userID, &entity.UpdatePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-secret-password",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	tokenRepo.AssertNotCalled(t, "DeleteUserRefreshTokens", mock.Anything, mock.Anything)
}
