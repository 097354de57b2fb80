package redisstore

import (
	"context"
	"strconv"
	"time"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// expiryGrace keeps a session readable past its expiry so lookups can still tell
// an expired token from an unknown one.
const expiryGrace = time.Hour

const scanBatchSize = 100

// Session hash fields.
const (
	fieldID        = "id"
	fieldTokenHash = "token_hash"
	fieldExpiresAt = "expires_at"
	fieldCreatedAt = "created_at"
)

// KEYS: user key, new token key
// ARGV: token key prefix, user id, session id, token hash, expires at (ms), created at (ms), ttl (ms)
const replaceSessionScript = `
local old = redis.call("HGET", KEYS[1], "token_hash")
if old then
  redis.call("DEL", ARGV[1] .. old)
end
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], "id", ARGV[3], "token_hash", ARGV[4], "expires_at", ARGV[5], "created_at", ARGV[6])
redis.call("PEXPIRE", KEYS[1], ARGV[7])
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[7])
return 1
`

var replaceSessionLua = redis.NewScript(replaceSessionScript)

// KEYS: user key, old token key, new token key
// ARGV: old token hash, user id, session id, new token hash, expires at (ms), created at (ms), ttl (ms)
const rotateSessionScript = `
local current = redis.call("HGET", KEYS[1], "token_hash")
if not current or current ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[2])
redis.call("HSET", KEYS[1], "id", ARGV[3], "token_hash", ARGV[4], "expires_at", ARGV[5], "created_at", ARGV[6])
redis.call("PEXPIRE", KEYS[1], ARGV[7])
redis.call("SET", KEYS[3], ARGV[2], "PX", ARGV[7])
return 1
`

var rotateSessionLua = redis.NewScript(rotateSessionScript)

// KEYS: token key
// ARGV: user key prefix, token hash
const deleteByTokenScript = `
local uid = redis.call("GET", KEYS[1])
if not uid then
  return 0
end
redis.call("DEL", KEYS[1])
local user_key = ARGV[1] .. uid
if redis.call("HGET", user_key, "token_hash") == ARGV[2] then
  redis.call("DEL", user_key)
end
return 1
`

var deleteByTokenLua = redis.NewScript(deleteByTokenScript)

// KEYS: user key
// ARGV: token key prefix, now (ms); an empty now deletes unconditionally
const deleteByUserScript = `
local data = redis.call("HMGET", KEYS[1], "token_hash", "expires_at")
if not data[1] then
  return 0
end
if ARGV[2] ~= "" and tonumber(data[2]) > tonumber(ARGV[2]) then
  return 0
end
redis.call("DEL", ARGV[1] .. data[1])
return redis.call("DEL", KEYS[1])
`

var deleteByUserLua = redis.NewScript(deleteByUserScript)

// RefreshSessionStore keeps one hash per user plus a token-hash index pointing back
// at the user. Every multi-key mutation runs as a single Lua script.
//
// The scripts derive the superseded token key from the stored hash, so not every key
// they touch is declared in KEYS. The store therefore takes a single-node client;
// Redis Cluster is not supported.
type RefreshSessionStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRefreshSessionStore creates a store whose keys live under prefix.
func NewRefreshSessionStore(client *redis.Client, prefix string) *RefreshSessionStore {
	return &RefreshSessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

var _ repository.RefreshSessionRepository = (*RefreshSessionStore)(nil)

func (s *RefreshSessionStore) userKeyPrefix() string {
	return s.prefix + ":session:user:"
}

func (s *RefreshSessionStore) tokenKeyPrefix() string {
	return s.prefix + ":session:token:"
}

func (s *RefreshSessionStore) userKey(userID uuid.UUID) string {
	return s.userKeyPrefix() + userID.String()
}

func (s *RefreshSessionStore) tokenKey(tokenHash string) string {
	return s.tokenKeyPrefix() + tokenHash
}

func (s *RefreshSessionStore) Replace(ctx context.Context, session *entity.RefreshSession) error {
	s.prepare(session)

	err := replaceSessionLua.Run(ctx, s.client,
		[]string{s.userKey(session.UserID), s.tokenKey(session.TokenHash)},
		s.tokenKeyPrefix(),
		session.UserID.String(),
		session.ID.String(),
		session.TokenHash,
		session.ExpiresAt.UnixMilli(),
		session.CreatedAt.UnixMilli(),
		s.ttl(session.ExpiresAt).Milliseconds(),
	).Err()
	if err != nil {
		return errors.Wrap(err, "failed to replace refresh session")
	}

	return nil
}

func (s *RefreshSessionStore) Rotate(ctx context.Context, oldTokenHash string, next *entity.RefreshSession) error {
	s.prepare(next)

	swapped, err := rotateSessionLua.Run(ctx, s.client,
		[]string{s.userKey(next.UserID), s.tokenKey(oldTokenHash), s.tokenKey(next.TokenHash)},
		oldTokenHash,
		next.UserID.String(),
		next.ID.String(),
		next.TokenHash,
		next.ExpiresAt.UnixMilli(),
		next.CreatedAt.UnixMilli(),
		s.ttl(next.ExpiresAt).Milliseconds(),
	).Int64()
	if err != nil {
		return errors.Wrap(err, "failed to rotate refresh session")
	}
	if swapped == 0 {
		return repository.ErrRefreshSessionNotFound
	}

	return nil
}

func (s *RefreshSessionStore) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error) {
	rawUserID, err := s.client.Get(ctx, s.tokenKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrRefreshSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to read refresh token index")
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt refresh token index")
	}

	fields, err := s.client.HGetAll(ctx, s.userKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read refresh session")
	}
	// The index can briefly outlive a superseded session.
	if len(fields) == 0 || fields[fieldTokenHash] != tokenHash {
		return nil, repository.ErrRefreshSessionNotFound
	}

	return decodeSession(userID, fields)
}

func (s *RefreshSessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	err := deleteByTokenLua.Run(ctx, s.client,
		[]string{s.tokenKey(tokenHash)},
		s.userKeyPrefix(),
		tokenHash,
	).Err()
	if err != nil {
		return errors.Wrap(err, "failed to delete refresh session")
	}

	return nil
}

func (s *RefreshSessionStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := deleteByUserLua.Run(ctx, s.client,
		[]string{s.userKey(userID)},
		s.tokenKeyPrefix(),
		"",
	).Err()
	if err != nil {
		return errors.Wrap(err, "failed to delete refresh session")
	}

	return nil
}

// DeleteExpired sweeps sessions that expired but are still inside the grace window.
func (s *RefreshSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var (
		deleted int64
		cursor  uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.userKeyPrefix()+"*", scanBatchSize).Result()
		if err != nil {
			return deleted, errors.Wrap(err, "failed to scan refresh sessions")
		}

		for _, key := range keys {
			n, err := deleteByUserLua.Run(ctx, s.client,
				[]string{key},
				s.tokenKeyPrefix(),
				strconv.FormatInt(now.UnixMilli(), 10),
			).Int64()
			if err != nil {
				return deleted, errors.Wrap(err, "failed to delete expired refresh session")
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (s *RefreshSessionStore) prepare(session *entity.RefreshSession) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now().UTC()
	}
}

func (s *RefreshSessionStore) ttl(expiresAt time.Time) time.Duration {
	remaining := expiresAt.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}

	return remaining + expiryGrace
}

func decodeSession(userID uuid.UUID, fields map[string]string) (*entity.RefreshSession, error) {
	id, err := uuid.Parse(fields[fieldID])
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "corrupt refresh session id")
	}
	expiresAt, err := strconv.ParseInt(fields[fieldExpiresAt], 10, 64)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "corrupt refresh session expiry")
	}
	createdAt, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "corrupt refresh session creation time")
	}

	return &entity.RefreshSession{
		ID:        id,
		UserID:    userID,
		TokenHash: fields[fieldTokenHash],
		ExpiresAt: time.UnixMilli(expiresAt).UTC(),
		CreatedAt: time.UnixMilli(createdAt).UTC(),
	}, nil
}
