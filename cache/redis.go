package cache

import (
	"time"

	"github.com/go-redis/redis"
	"go.uber.org/zap"

	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
)

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr, password string) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisRepository{client: client}
}

func (repository *RedisRepository) SetKey(key string, value []byte, ttl time.Duration) {
	if err := repository.client.Set(key, value, ttl).Err(); err != nil {
		log.Logger().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (repository *RedisRepository) Get(key string) []byte {
	data, err := repository.client.Get(key).Bytes()
	if err != nil {
		return nil
	}

	return data
}

func (repository *RedisRepository) Prune() error {
	return repository.client.FlushDB().Err()
}
