package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/credentials"
	"albuhara/pkg/logger"
)

// Поля хеша с токенами.
const (
	fieldAccess  = "access"
	fieldRefresh = "refresh"
)

const (
	LogMethodGet            = "get"
	LogMethodSet            = "set"
	LogMethodSetAccessToken = "set_access_token"
	LogMethodClear          = "clear"

	ErrorFailedToGet    = "failed to get credentials from redis"
	ErrorFailedToSet    = "failed to set credentials in redis"
	ErrorFailedToDelete = "failed to delete credentials from redis"
)

// setAccessScript обновляет токен доступа, только если в хеше есть
// refresh-токен. Возвращает 0, если сессии нет.
var setAccessScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[2], ARGV[3])
if tonumber(ARGV[4]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[4])
end
return 1
`)

// RedisStore хранит пару токенов в хеше Redis, позволяя нескольким
// хостам администрирования разделять одну сессию.
type RedisStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisStore создает хранилище под ключом key. При ttl > 0 ключ истекает
// через ttl после последней записи.
func NewRedisStore(client redis.Cmdable, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: key, ttl: ttl}
}

var _ credentials.Store = (*RedisStore)(nil)

func (s *RedisStore) Get(ctx context.Context) (entities.Credentials, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", s.key))

	values, err := s.client.HMGet(ctx, s.key, fieldAccess, fieldRefresh).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return entities.Credentials{}, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var creds entities.Credentials
	if v, ok := values[0].(string); ok {
		creds.AccessToken = v
	}
	if v, ok := values[1].(string); ok {
		creds.RefreshToken = v
	}
	return creds, nil
}

func (s *RedisStore) Set(ctx context.Context, creds entities.Credentials) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", s.key))

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key, fieldAccess, creds.AccessToken, fieldRefresh, creds.RefreshToken)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.key, s.ttl)
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

func (s *RedisStore) SetAccessToken(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSetAccessToken), zap.String("key", s.key))

	updated, err := setAccessScript.Run(ctx, s.client, []string{s.key},
		fieldRefresh, fieldAccess, token, s.ttl.Milliseconds()).Int()
	if err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	if updated == 0 {
		return credentials.ErrNoSession
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodClear), zap.String("key", s.key))

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
