package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient подключается к Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: не удалось подключиться к %s: %w", addr, err)
	}
	return rdb, nil
}

// VoteLockKey возвращает ключ блокировки голосования по отчёту.
func VoteLockKey(reportID uuid.UUID) string {
	return "lock:flood_report:vote:" + reportID.String()
}

// RedisVoteLocker сериализует голоса по одному отчёту между инстансами сервиса.
type RedisVoteLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisVoteLocker создаёт блокировщик поверх клиента Redis.
func NewRedisVoteLocker(client redislock.RedisClient, ttl time.Duration) *RedisVoteLocker {
	return &RedisVoteLocker{
		locker: redislock.New(client),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(25*time.Millisecond), 40),
	}
}

// Lock берёт блокировку и возвращает функцию её снятия.
// redislock.ErrNotObtained возвращается как есть, вызывающий решает, что делать дальше.
func (l *RedisVoteLocker) Lock(ctx context.Context, reportID uuid.UUID) (func(), error) {
	lk, err := l.locker.Obtain(ctx, VoteLockKey(reportID), l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if err != nil {
		return nil, err
	}
	return func() {
		// Контекст запроса мог уже истечь, снимаем блокировку отдельным.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = lk.Release(releaseCtx)
	}, nil
}
