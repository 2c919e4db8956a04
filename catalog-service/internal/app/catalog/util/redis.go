package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carenest/catalog-service/internal/app/catalog/entity"

	"github.com/redis/go-redis/v9"
)

// Ключи кеша справочников
const (
	languagesCacheKey = "taxonomies:languages"
	servicesCacheKey  = "taxonomies:services"
	degreesCacheKey   = "taxonomies:degrees"
	locationsCacheKey = "taxonomies:locations"
)

// RedisClient кеширует редко меняющиеся справочники каталога
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) GetLanguages(ctx context.Context) ([]entity.Language, error) {
	var languages []entity.Language
	if err := r.getJSON(ctx, languagesCacheKey, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *RedisClient) SetLanguages(ctx context.Context, languages []entity.Language, ttl time.Duration) error {
	return r.setJSON(ctx, languagesCacheKey, languages, ttl)
}

func (r *RedisClient) GetServices(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	if err := r.getJSON(ctx, servicesCacheKey, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *RedisClient) SetServices(ctx context.Context, services []entity.Service, ttl time.Duration) error {
	return r.setJSON(ctx, servicesCacheKey, services, ttl)
}

func (r *RedisClient) GetDegrees(ctx context.Context) ([]entity.Degree, error) {
	var degrees []entity.Degree
	if err := r.getJSON(ctx, degreesCacheKey, &degrees); err != nil {
		return nil, err
	}
	return degrees, nil
}

func (r *RedisClient) SetDegrees(ctx context.Context, degrees []entity.Degree, ttl time.Duration) error {
	return r.setJSON(ctx, degreesCacheKey, degrees, ttl)
}

func (r *RedisClient) GetLocations(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	if err := r.getJSON(ctx, locationsCacheKey, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *RedisClient) SetLocations(ctx context.Context, locations []entity.Location, ttl time.Duration) error {
	return r.setJSON(ctx, locationsCacheKey, locations, ttl)
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// getJSON читает ключ из кеша; cache miss возвращается как nil без ошибки
func (r *RedisClient) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}

func (r *RedisClient) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	return nil
}
