package middleware

import (
	"context"
	"mime"
	"net/http"
	"time"
)

// Timeout навешивает deadline на запрос, если его ещё нет.
// Multipart-запросы (загрузка медиа в объектное хранилище) получают
// отдельный upload-дедлайн; upload <= 0 означает общий d.
// Значение d <= 0 делает мидлвар no-op.
func Timeout(d, upload time.Duration) Middleware {
	if upload <= 0 {
		upload = d
	}

	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			limit := d
			if isMultipart(r) {
				limit = upload
			}

			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
