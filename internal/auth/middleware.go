package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/apperr"
	"github.com/notekeeper/backend/internal/db"
)

type contextKey string

const userContextKey contextKey = "user"

// Middleware authenticates a bearer access token and resolves it to a stored
// user before the handler runs. Handlers read the user once via CurrentUser
// and pass it down explicitly; nothing below the handler layer touches the
// request context for identity.
func Middleware(service *Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apperr.Write(w, apperr.InvalidToken("Not authenticated"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				apperr.Write(w, apperr.InvalidToken("Not authenticated"))
				return
			}

			user, err := service.ResolveUser(r.Context(), parts[1])
			if err != nil {
				switch {
				case errors.Is(err, ErrInvalidToken):
					apperr.Write(w, apperr.InvalidToken("Invalid or expired token"))
				case errors.Is(err, db.ErrUserNotFound):
					apperr.Write(w, apperr.InvalidToken("User not found"))
				default:
					wrapped := apperr.Internal("Internal Server Error").WithCause(err)
					logger.Error("resolving user from token failed", zap.Error(wrapped))
					apperr.Write(w, wrapped)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user resolved by Middleware, or nil when the
// request never passed through it.
func CurrentUser(ctx context.Context) *db.User {
	user, ok := ctx.Value(userContextKey).(*db.User)
	if !ok {
		return nil
	}
	return user
}
