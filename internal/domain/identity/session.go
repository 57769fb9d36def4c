package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is an active session as stored by the session service. The main
// application issues sessions; this service only reads them.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// SessionStore exchanges an opaque session token for a session
type SessionStore interface {
	Get(ctx context.Context, token string) (*Session, error)
}

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	fields, err := s.client.HGetAll(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		// Expired or never issued
		return nil, nil
	}

	userID, err := uuid.Parse(fields["user_id"])
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID: userID,
		Email:  fields["email"],
	}, nil
}
