package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"hrmconsole/internal/auth"
	"hrmconsole/internal/requestctx"
	"hrmconsole/internal/transport/http/api"
)

const SessionCookie = "hrm_session"

// Session binds every request to a workspace id carried in a signed cookie.
// Requests without a valid cookie get a new session; tokens past half their
// lifetime are reissued so active sessions slide forward.
func Session(secret string, ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			reissue := true
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				claims, err := auth.ParseToken(secret, cookie.Value)
				if err == nil {
					sessionID = claims.SessionID
					if claims.IssuedAt != nil && time.Since(claims.IssuedAt.Time) < ttl/2 {
						reissue = false
					}
				} else {
					slog.Debug("session cookie rejected", "err", err)
				}
			}
			if sessionID == "" {
				sessionID = auth.NewSessionID()
			}
			if reissue {
				token, err := auth.GenerateToken(secret, sessionID, ttl)
				if err != nil {
					slog.Error("issue session token failed", "err", err)
					api.Fail(w, http.StatusInternalServerError, "session_error", "could not start a session", GetRequestID(r.Context()))
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}
			ctx := requestctx.WithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionID(ctx context.Context) string {
	return requestctx.GetSessionID(ctx)
}
