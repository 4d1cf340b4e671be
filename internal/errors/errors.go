// errors стандартизирует ответы об ошибках HTTP-слоя wave-feed.
// На вход он принимает ошибку сервиса, а на выход даёт:
//   - корректный HTTP-статус;
//   - короткий стабильный код и безопасное message без утечки деталей.
//
// Источник истинности по ошибкам: переменные Err* пакета service.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/wave-feed/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type mapping struct {
	target error
	status int
	code   string
}

// table — порядок важен: частные ошибки проверяются раньше общих.
var table = []mapping{
	{service.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{service.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{service.ErrEmptyPassword, http.StatusBadRequest, "empty_password"},
	{service.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrTokenExpired, http.StatusUnauthorized, "token_expired"},
	{service.ErrTokenRevoked, http.StatusUnauthorized, "token_revoked"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{service.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},

	{service.ErrNotFound, http.StatusNotFound, "not_found"},

	{service.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{service.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{service.ErrConflict, http.StatusConflict, "already_exists"},

	{service.ErrInFlight, http.StatusTooManyRequests, "in_flight"},

	{context.Canceled, StatusClientClosedRequest, "canceled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - тело запроса больше лимита - 413;
//   - известная ошибка сервиса - статус из table, message = текст сентинела;
//   - прочее (в т.ч. ErrInternal) - 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return internal()
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: APIError{Code: "payload_too_large", Message: "request body too large"},
		}
	}

	if stderrors.Is(err, service.ErrInternal) {
		return internal()
	}

	for _, m := range table {
		if stderrors.Is(err, m.target) {
			return m.status, ErrorResponse{
				Error: APIError{Code: m.code, Message: m.target.Error()},
			}
		}
	}

	return internal()
}

func internal() (int, ErrorResponse) {
	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
