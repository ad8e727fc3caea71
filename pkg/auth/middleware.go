package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/ziplofy/storeconfig/pkg/httpx"
	"github.com/ziplofy/storeconfig/pkg/logger"
)

// AdminSessionName is the cookie name of the admin session.
const AdminSessionName = "storeconfig_admin"

const sessionUserIDKey = "user_id"

// Protect is a chi middleware gating the admin API.
//
// A request is authenticated by an "Authorization: Bearer <jwt>" header or,
// when no header is present, by an admin session holding a user_id. On success
// the user (and the token's store scope) is attached to the context and
// handlers may call auth.UserIDFromCtx. Otherwise it answers 401.
//
// store may be nil, in which case only bearer tokens are accepted.
func Protect(tokens *Tokens, store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header := r.Header.Get("Authorization"); header != "" {
				raw, ok := bearerToken(header)
				if !ok {
					httpx.JSONError(w, http.StatusUnauthorized, "Not authorized, malformed authorization header")
					return
				}
				claims, err := tokens.Parse(raw)
				if err != nil {
					log.WarnContext(r.Context(), "rejected bearer token", "error", err)
					httpx.JSONError(w, http.StatusUnauthorized, "Not authorized, token failed")
					return
				}
				ctx := WithStores(WithUserID(r.Context(), claims.Subject), claims.Stores)
				ctx = logger.ContextWith(ctx, slog.String("user_id", claims.Subject), slog.String("auth", "bearer"))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if store != nil {
				if userID, ok := sessionUser(r, store, log); ok {
					ctx := logger.ContextWith(WithUserID(r.Context(), userID), slog.String("user_id", userID), slog.String("auth", "session"))
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			httpx.JSONError(w, http.StatusUnauthorized, "Not authorized, no token")
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func sessionUser(r *http.Request, store sessions.Store, log logger.Logger) (string, bool) {
	session, err := store.Get(r, AdminSessionName)
	if err != nil {
		log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return "", false
	}
	userID, ok := session.Values[sessionUserIDKey].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// StartAdminSession stores userID in the admin session cookie.
func StartAdminSession(w http.ResponseWriter, r *http.Request, store sessions.Store, userID string) error {
	session, err := store.Get(r, AdminSessionName)
	if err != nil {
		return err
	}
	session.Values[sessionUserIDKey] = userID
	return session.Save(r, w)
}
