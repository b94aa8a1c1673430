package auth

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/pkg/logger"
)

// SessionMiddleware ensures every request carries a session token (issuing a
// cookie for first-time visitors) and attaches the logged-in staff identity,
// when there is one, to the request context.
func SessionMiddleware(store SessionManager, uc UseCase, cookieName string, log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token = store.NewToken()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := NewContextWithSessionToken(r.Context(), token)

			userID, err := store.UserID(ctx, token)
			if err != nil {
				log.Error("failed to load session", zap.Error(err))
			} else if userID != "" {
				identity, err := uc.Identity(ctx, userID)
				if err != nil {
					log.Error("failed to load identity", zap.String("user_id", userID), zap.Error(err))
				} else if identity != nil {
					ctx = NewContextWithIdentity(ctx, identity)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
