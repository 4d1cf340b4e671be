package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/wave-feed/internal/errors"
	logctx "github.com/pribylovaa/wave-feed/internal/pkg/log"
)

// TokenValidator проверяет access-токен и возвращает id пользователя.
type TokenValidator interface {
	ValidateToken(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// AuthBearer проверяет Bearer-токен из Authorization и кладёт id пользователя
// в контекст (UserIDFrom).
//   - заголовка нет или он не Bearer: запрос идёт дальше анонимно;
//   - токен невалиден или истёк: 401, обработчик не вызывается.
func AuthBearer(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")

			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			uid, err := v.ValidateToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := logctx.With(WithUserID(r.Context(), uid), "user_id", uid.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
