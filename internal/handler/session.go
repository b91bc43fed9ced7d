package handler

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "cart_session"

type contextKey string

const sessionIDKey contextKey = "sessionID"

// Session ensures every request carries a cart session ID, issuing a cookie
// on first contact. The ID keys the in-memory cart store; it is not an
// authentication credential.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			id, err := uuid.NewV4()
			if err != nil {
				log.Error().Err(err).Msg("Failed to generate session ID")
				respondWithError(w, http.StatusInternalServerError, "failed to start session")
				return
			}
			sessionID = id.String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
