package repository

import (
	"context"
	"errors"

	"carenest/children-service/internal/app/children/entity"

	"github.com/google/uuid"
)

var (
	ErrChildNotFound = errors.New("child not found")
	ErrTokenNotFound = errors.New("registration token not found")
	// ErrTokenUsed возвращается, когда условное обновление не затронуло ни одной
	// строки: токен существует, но уже погашен (в том числе конкурирующим запросом)
	ErrTokenUsed = errors.New("registration token already used")
)

type ChildRepository interface {
	Create(ctx context.Context, child *entity.Child) error
	// CreateWithToken гасит токен и создает ребенка в одной транзакции:
	// либо происходит и то и другое, либо ничего
	CreateWithToken(ctx context.Context, child *entity.Child, code string) error
	GetByID(ctx context.Context, id uint) (*entity.Child, error)
	GetByTokenCode(ctx context.Context, code string) (*entity.Child, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Child, error)
	Update(ctx context.Context, child *entity.Child) error
	Delete(ctx context.Context, id uint) error
}

type TokenRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.RegistrationToken, error)
}
