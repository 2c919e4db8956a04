package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carenest/children-service/internal/app/children/entity"
)

// MockChildRepository - мок репозитория детей для unit-тестов
type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) Create(ctx context.Context, child *entity.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepository) CreateWithToken(ctx context.Context, child *entity.Child, code string) error {
	args := m.Called(ctx, child, code)
	return args.Error(0)
}

func (m *MockChildRepository) GetByID(ctx context.Context, id uint) (*entity.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildRepository) GetByTokenCode(ctx context.Context, code string) (*entity.Child, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Child), args.Error(1)
}

func (m *MockChildRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Child, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Child), args.Error(1)
}

func (m *MockChildRepository) Update(ctx context.Context, child *entity.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenRepository - мок репозитория регистрационных токенов
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetByCode(ctx context.Context, code string) (*entity.RegistrationToken, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RegistrationToken), args.Error(1)
}

// MockMessagePublisher - мок Kafka-продюсера
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
