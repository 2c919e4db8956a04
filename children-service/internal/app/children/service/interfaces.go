package service

import (
	"context"

	"github.com/google/uuid"

	"carenest/children-service/internal/app/children/entity"
)

// ChildServiceInterface - интерфейс сервиса детей для handler-слоя и тестов
type ChildServiceInterface interface {
	RegisterChild(ctx context.Context, userID uuid.UUID, req *entity.RegisterChildRequest) (*entity.Child, error)
	CheckTokenStatus(ctx context.Context, code string) (bool, error)
	ListChildren(ctx context.Context, userID uuid.UUID) ([]entity.Child, error)
	GetChild(ctx context.Context, id uint, userID uuid.UUID) (*entity.Child, error)
	GetChildByID(ctx context.Context, id uint) (*entity.Child, error)
	GetChildByToken(ctx context.Context, code string) (*entity.Child, error)
	UpdateChild(ctx context.Context, id uint, userID uuid.UUID, req *entity.UpdateChildRequest) (*entity.Child, error)
	DeleteChild(ctx context.Context, id uint, userID uuid.UUID) error
}
