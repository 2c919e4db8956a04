package service

import (
	"context"

	"carenest/auth-service/internal/app/auth/entity"
	"carenest/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, accessToken string) error
	ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.UserWithRole, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *entity.UpdateProfileRequest) (*entity.UserWithRole, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, req *entity.UpdatePasswordRequest) error
	ListRoles(ctx context.Context) ([]entity.Role, error)
}
