// Package auth authenticates admin API callers and identifies anonymous
// storefront visitors.
//
// Session cookies only carry a signed and encrypted session id. Keys should be
// 32 or 64 bytes for signing and 16, 24 or 32 bytes for encryption:
//
//	openssl rand -base64 32
package auth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// Session lifetimes.
const (
	AdminSessionMaxAge   = 7 * 24 * time.Hour
	VisitorSessionMaxAge = 30 * 24 * time.Hour
)

var sessionIDEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// RedisStore is a sessions.Store keeping values in Redis under
// "session:<cookie name>:<id>". Reading a session slides its expiry, so an
// active visitor keeps the same cart for as long as they return within MaxAge.
type RedisStore struct {
	client     *redis.Client
	codecs     []securecookie.Codec
	serializer securecookie.GobEncoder
	options    sessions.Options
}

// NewSessionStore returns a store whose cookies and Redis keys live for
// maxAge. secure marks cookies HTTPS-only.
func NewSessionStore(client *redis.Client, authKey, encryptionKey []byte, secure bool, maxAge time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(maxAge / time.Second),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func redisKey(name, id string) string {
	return "session:" + name + ":" + id
}

// Get returns the request-cached session for name.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing or forged
// cookie, or an id Redis no longer knows, yields a fresh session. Redis
// failures are returned alongside the fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if securecookie.DecodeMulti(name, c.Value, &id, s.codecs...) != nil {
		return session, nil
	}

	found, err := s.load(r.Context(), name, id, session)
	if err != nil {
		return session, err
	}
	if found {
		session.ID = id
		session.IsNew = false
	}
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), redisKey(session.Name(), session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = sessionIDEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	}
	data, err := s.serializer.Serialize(session.Values)
	if err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(r.Context(), redisKey(session.Name(), session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	cookie, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), cookie, session.Options))
	return nil
}

// load fetches the values for id and pushes the key's expiry out by MaxAge.
func (s *RedisStore) load(ctx context.Context, name, id string, session *sessions.Session) (bool, error) {
	ttl := time.Duration(s.options.MaxAge) * time.Second
	data, err := s.client.GetEx(ctx, redisKey(name, id), ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if err := s.serializer.Deserialize(data, &session.Values); err != nil {
		// Values written by an incompatible build; start over.
		return false, nil
	}
	return true, nil
}

