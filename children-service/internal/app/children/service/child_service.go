package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"carenest/children-service/internal/app/children/entity"
	"carenest/children-service/internal/app/children/infrastructure"
	"carenest/children-service/internal/app/children/repository"
	"carenest/pkg/logger"
	"carenest/pkg/metrics"
)

var (
	ErrChildNotFound = errors.New("ребенок не найден")
	ErrTokenNotFound = errors.New("регистрационный токен не найден")
	ErrTokenUsed     = errors.New("регистрационный токен уже использован")
	ErrUnauthorized  = errors.New("нет доступа к этому ребенку")
	ErrInvalidDate   = errors.New("некорректная дата рождения")
)

const birthdayLayout = "2006-01-02"

// ChildService управляет регистрацией детей и погашением токенов
type ChildService struct {
	childRepo repository.ChildRepository
	tokenRepo repository.TokenRepository
	publisher infrastructure.MessagePublisher
}

// NewChildService создает новый сервис детей с внедрением зависимостей
func NewChildService(
	childRepo repository.ChildRepository,
	tokenRepo repository.TokenRepository,
	publisher infrastructure.MessagePublisher,
) *ChildService {
	return &ChildService{
		childRepo: childRepo,
		tokenRepo: tokenRepo,
		publisher: publisher,
	}
}

// RegisterChild регистрирует ребенка; при наличии кода токен гасится
// в той же транзакции, что и создание записи
func (s *ChildService) RegisterChild(ctx context.Context, userID uuid.UUID, req *entity.RegisterChildRequest) (*entity.Child, error) {
	child := &entity.Child{
		UserID:    userID,
		Name:      req.Name,
		LastName:  req.LastName,
		Address:   req.Address,
		BloodType: req.BloodType,
		Gender:    req.Gender,
		ImageURL:  req.ImageURL,
	}

	if req.Birthday != "" {
		birthday, err := time.Parse(birthdayLayout, req.Birthday)
		if err != nil {
			return nil, ErrInvalidDate
		}
		child.Birthday = &birthday
	}

	code := NormalizeTokenCode(req.TokenCode)
	if code == "" {
		if err := s.childRepo.Create(ctx, child); err != nil {
			return nil, err
		}
		metrics.ChildrenRegistered.Inc()
		s.publishEvent(ctx, "CHILD_REGISTERED", child)
		return child, nil
	}

	err := s.childRepo.CreateWithToken(ctx, child, code)
	switch {
	case errors.Is(err, repository.ErrTokenNotFound):
		metrics.TokensRedeemed.WithLabelValues("not_found").Inc()
		return nil, ErrTokenNotFound
	case errors.Is(err, repository.ErrTokenUsed):
		metrics.TokensRedeemed.WithLabelValues("already_used").Inc()
		return nil, ErrTokenUsed
	case err != nil:
		return nil, err
	}

	metrics.TokensRedeemed.WithLabelValues("redeemed").Inc()
	metrics.ChildrenRegistered.Inc()
	s.publishEvent(ctx, "CHILD_REGISTERED", child)

	return child, nil
}

// CheckTokenStatus возвращает true, если токен уже погашен
func (s *ChildService) CheckTokenStatus(ctx context.Context, code string) (bool, error) {
	code = NormalizeTokenCode(code)

	token, err := s.tokenRepo.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return false, ErrTokenNotFound
	}
	if err != nil {
		return false, err
	}

	return token.IsUsed(), nil
}

// ListChildren возвращает всех детей родителя
func (s *ChildService) ListChildren(ctx context.Context, userID uuid.UUID) ([]entity.Child, error) {
	return s.childRepo.ListByUser(ctx, userID)
}

// GetChild возвращает ребенка с проверкой владельца
func (s *ChildService) GetChild(ctx context.Context, id uint, userID uuid.UUID) (*entity.Child, error) {
	return s.getOwnedChild(ctx, id, userID)
}

// GetChildByID возвращает ребенка без проверки владельца (для персонала)
func (s *ChildService) GetChildByID(ctx context.Context, id uint) (*entity.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrChildNotFound) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

// GetChildByToken находит ребенка по коду погашенного токена
func (s *ChildService) GetChildByToken(ctx context.Context, code string) (*entity.Child, error) {
	code = NormalizeTokenCode(code)

	child, err := s.childRepo.GetByTokenCode(ctx, code)
	if errors.Is(err, repository.ErrChildNotFound) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

// UpdateChild обновляет данные ребенка с проверкой владельца
func (s *ChildService) UpdateChild(ctx context.Context, id uint, userID uuid.UUID, req *entity.UpdateChildRequest) (*entity.Child, error) {
	child, err := s.getOwnedChild(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		child.Name = req.Name
	}
	if req.LastName != "" {
		child.LastName = req.LastName
	}
	if req.Address != "" {
		child.Address = req.Address
	}
	if req.BloodType != "" {
		child.BloodType = req.BloodType
	}
	if req.Gender != "" {
		child.Gender = req.Gender
	}
	if req.ImageURL != "" {
		child.ImageURL = req.ImageURL
	}
	if req.Birthday != "" {
		birthday, err := time.Parse(birthdayLayout, req.Birthday)
		if err != nil {
			return nil, ErrInvalidDate
		}
		child.Birthday = &birthday
	}

	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}

	return child, nil
}

// DeleteChild удаляет ребенка с проверкой владельца
func (s *ChildService) DeleteChild(ctx context.Context, id uint, userID uuid.UUID) error {
	if _, err := s.getOwnedChild(ctx, id, userID); err != nil {
		return err
	}
	return s.childRepo.Delete(ctx, id)
}

func (s *ChildService) getOwnedChild(ctx context.Context, id uint, userID uuid.UUID) (*entity.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrChildNotFound) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}

	if child.UserID != userID {
		return nil, ErrUnauthorized
	}

	return child, nil
}

func (s *ChildService) publishEvent(ctx context.Context, eventType string, child *entity.Child) {
	event := entity.ChildEvent{
		EventType: eventType,
		ChildID:   child.ID,
		UserID:    child.UserID.String(),
		TokenCode: child.TokenCode,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal child event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, eventType, payload); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish child event")
	}
}

// NormalizeTokenCode приводит код к каноническому виду перед поиском
func NormalizeTokenCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
