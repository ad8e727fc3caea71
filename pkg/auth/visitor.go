package auth

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ziplofy/storeconfig/pkg/httpx"
	"github.com/ziplofy/storeconfig/pkg/logger"
)

// VisitorSessionName is the cookie name of the anonymous storefront session.
const VisitorSessionName = "storeconfig_visitor"

const sessionVisitorIDKey = "visitor_id"

// Visitor is a chi middleware for the public storefront routes. It assigns
// every browser a stable anonymous visitor ID kept in a session cookie and
// attaches it to the context (see VisitorIDFromCtx).
func Visitor(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, VisitorSessionName)
			if err != nil {
				// Undecodable cookie: start over with a fresh visitor.
				log.WarnContext(r.Context(), "invalid visitor cookie", "error", err)
				session, err = store.New(r, VisitorSessionName)
				if err != nil {
					httpx.JSONError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
			}

			visitorID, ok := session.Values[sessionVisitorIDKey].(string)
			if !ok || visitorID == "" {
				visitorID = uuid.NewString()
				session.Values[sessionVisitorIDKey] = visitorID
				if err := session.Save(r, w); err != nil {
					log.ErrorContext(r.Context(), "failed to save visitor session", "error", err)
					httpx.JSONError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
			}

			ctx := logger.ContextWith(WithVisitorID(r.Context(), visitorID), slog.String("visitor_id", visitorID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
