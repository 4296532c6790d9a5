package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"bibiartisan/internal/domain"
)

const (
	sessionCookieName = "flash_id"
	keyPrefix         = "bibiartisan:flash:"
)

// RedisStore keeps messages in a redis list keyed by a random id held in a cookie
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewRedisClient connects to the redis instance at rawURL
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisStore creates a redis-backed store
func NewRedisStore(client *redis.Client, ttl time.Duration, secure bool) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, secure: secure}
}

var _ Store = (*RedisStore)(nil)

// Add pushes msgs onto the visitor's list and refreshes its expiry
func (s *RedisStore) Add(w http.ResponseWriter, r *http.Request, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	id := s.sessionID(r)
	if id == "" {
		id = uuid.NewString()
	}

	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	ctx := r.Context()
	key := keyPrefix + id
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store flash messages: %w", err)
	}

	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return nil
}

// Pop reads and deletes the visitor's list
func (s *RedisStore) Pop(w http.ResponseWriter, r *http.Request) ([]domain.Message, error) {
	id := s.sessionID(r)
	if id == "" {
		return nil, nil
	}

	ctx := r.Context()
	key := keyPrefix + id
	var items *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read flash messages: %w", err)
	}
	http.SetCookie(w, s.cookie("", -1))

	var msgs []domain.Message
	for _, item := range items.Val() {
		var m domain.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// sessionID returns the id from the request cookie, or "" when absent or malformed
func (s *RedisStore) sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func (s *RedisStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
