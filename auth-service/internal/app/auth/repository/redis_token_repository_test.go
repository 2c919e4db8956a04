package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisTokenRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      TokenRepository
}

func TestRedisTokenRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisTokenRepositoryTestSuite))
}

func (s *RedisTokenRepositoryTestSuite) SetupTest() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRedisTokenRepository(s.client)
}

func (s *RedisTokenRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisTokenRepositoryTestSuite) TestSaveAndGetRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()

	err := s.repo.SaveRefreshToken(ctx, userID, "token-1", time.Now().Add(time.Hour))
	s.NoError(err)

	stored, err := s.repo.GetRefreshToken(ctx, "token-1")
	s.NoError(err)
	s.Equal(userID, stored.UserID)
	s.Equal("token-1", stored.Token)
}

func (s *RedisTokenRepositoryTestSuite) TestGetRefreshToken_NotFound() {
	stored, err := s.repo.GetRefreshToken(context.Background(), "unknown")

	s.ErrorIs(err, ErrRefreshTokenNotFound)
	s.Nil(stored)
}

func (s *RedisTokenRepositoryTestSuite) TestSaveRefreshToken_AlreadyExpired() {
	err := s.repo.SaveRefreshToken(context.Background(), uuid.New(), "token-1", time.Now().Add(-time.Minute))
	s.Error(err)
}

func (s *RedisTokenRepositoryTestSuite) TestRefreshToken_TTLExpires() {
	ctx := context.Background()

	err := s.repo.SaveRefreshToken(ctx, uuid.New(), "token-1", time.Now().Add(time.Second))
	s.NoError(err)

	// miniredis поддерживает FastForward для проверки TTL
	s.miniRedis.FastForward(2 * time.Second)

	_, err = s.repo.GetRefreshToken(ctx, "token-1")
	s.ErrorIs(err, ErrRefreshTokenNotFound)
}

func (s *RedisTokenRepositoryTestSuite) TestDeleteRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()

	err := s.repo.SaveRefreshToken(ctx, userID, "token-1", time.Now().Add(time.Hour))
	s.NoError(err)

	err = s.repo.DeleteRefreshToken(ctx, "token-1")
	s.NoError(err)

	_, err = s.repo.GetRefreshToken(ctx, "token-1")
	s.ErrorIs(err, ErrRefreshTokenNotFound)
}

func (s *RedisTokenRepositoryTestSuite) TestDeleteUserRefreshTokens_RemovesAllSessions() {
	ctx := context.Background()
	userID := uuid.New()
	otherUser := uuid.New()

	s.NoError(s.repo.SaveRefreshToken(ctx, userID, "token-1", time.Now().Add(time.Hour)))
	s.NoError(s.repo.SaveRefreshToken(ctx, userID, "token-2", time.Now().Add(time.Hour)))
	s.NoError(s.repo.SaveRefreshToken(ctx, otherUser, "token-3", time.Now().Add(time.Hour)))

	err := s.repo.DeleteUserRefreshTokens(ctx, userID)
	s.NoError(err)

	_, err = s.repo.GetRefreshToken(ctx, "token-1")
	s.ErrorIs(err, ErrRefreshTokenNotFound)
	_, err = s.repo.GetRefreshToken(ctx, "token-2")
	s.ErrorIs(err, ErrRefreshTokenNotFound)

	// Токены других пользователей не затрагиваются
	stored, err := s.repo.GetRefreshToken(ctx, "token-3")
	s.NoError(err)
	s.Equal(otherUser, stored.UserID)
}

func (s *RedisTokenRepositoryTestSuite) TestBlacklist() {
	ctx := context.Background()

	blacklisted, err := s.repo.IsBlacklisted(ctx, "access-token")
	s.NoError(err)
	s.False(blacklisted)

	err = s.repo.AddToBlacklist(ctx, "access-token", time.Now().Add(time.Minute))
	s.NoError(err)

	blacklisted, err = s.repo.IsBlacklisted(ctx, "access-token")
	s.NoError(err)
	s.True(blacklisted)
}

func (s *RedisTokenRepositoryTestSuite) TestBlacklist_ExpiredTokenSkipped() {
	ctx := context.Background()

	// Истекший access токен и так невалиден, запись не создается
	err := s.repo.AddToBlacklist(ctx, "expired-token", time.Now().Add(-time.Minute))
	s.NoError(err)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "expired-token")
	s.NoError(err)
	s.False(blacklisted)
}
