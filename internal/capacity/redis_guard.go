package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockTTL      = 5 * time.Second
	defaultPollInterval = 25 * time.Millisecond
)

// ErrLockUnavailable is returned when the lock could not be taken before
// the context ended.
var ErrLockUnavailable = errors.New("workshop registration lock unavailable")

// errLockLost cancels the critical section when the lock can no longer be
// extended, so a second holder never overlaps with this one.
var errLockLost = fmt.Errorf("%w: lock expired while held", ErrLockUnavailable)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisGuard locks across processes that share one Redis.
type RedisGuard struct {
	client redis.UniversalClient
	logger *zap.Logger
	ttl    time.Duration
	poll   time.Duration
}

// NewRedisGuard builds a guard. The lock TTL bounds how long a crashed
// holder can block a workshop.
func NewRedisGuard(client redis.UniversalClient, logger *zap.Logger, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisGuard{client: client, logger: logger, ttl: ttl, poll: defaultPollInterval}
}

// LockKey returns the Redis key guarding a workshop.
func LockKey(workshopID int) string {
	return fmt.Sprintf("workshop:%d:registration-lock", workshopID)
}

// Do acquires the lock with SET NX, polling until ctx is done. While fn
// runs the lock is extended every third of its TTL; if an extension fails
// fn's context is cancelled and Do reports the lock as unavailable.
func (g *RedisGuard) Do(ctx context.Context, workshopID int, fn func(ctx context.Context) error) error {
	key := LockKey(workshopID)
	token := uuid.NewString()

	ticker := time.NewTicker(g.poll)
	defer ticker.Stop()
	for {
		ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrLockUnavailable, ctx.Err())
		case <-ticker.C:
		}
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, g.client, []string{key}, token).Err(); err != nil {
			g.logger.Warn("release registration lock", zap.String("key", key), zap.Error(err))
		}
	}()

	fnCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stop := keepAlive(fnCtx, g.ttl/3, func(ctx context.Context) (bool, error) {
		n, err := extendScript.Run(ctx, g.client, []string{key}, token, g.ttl.Milliseconds()).Int()
		return n == 1, err
	}, func(err error) {
		g.logger.Warn("registration lock lost", zap.String("key", key), zap.Error(err))
		cancel(errLockLost)
	})
	err := fn(fnCtx)
	stop()

	if cause := context.Cause(fnCtx); errors.Is(cause, errLockLost) {
		return fmt.Errorf("%w: %v", cause, err)
	}
	return err
}

// keepAlive calls extend every interval until stop is called or ctx ends.
// A failed or refused extension is reported once through lost.
func keepAlive(ctx context.Context, interval time.Duration, extend func(context.Context) (bool, error), lost func(error)) (stop func()) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				ok, err := extend(ctx)
				if err == nil && !ok {
					err = errLockLost
				}
				if err != nil {
					select {
					case <-done:
					default:
						lost(err)
					}
					return
				}
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
