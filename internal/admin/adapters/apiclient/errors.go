package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Ошибки клиента API.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrServer             = errors.New("server error")
	ErrSessionInvalidated = errors.New("session invalidated")
	ErrRefreshRejected    = errors.New("token refresh rejected")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidBaseURL     = errors.New("invalid base url")
	ErrNilRequest         = errors.New("nil request")
)

// StatusError - ответ бэкенда со статусом >= 400. Ответ не интерпретируется,
// тело доступно вызывающему коду.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	// Cause - причина, по которой ответ не удалось восстановить, например
	// неудачное обновление токена.
	Cause error
}

func newStatusError(req *Request, resp *Response, cause error) *StatusError {
	return &StatusError{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Cause:      cause,
	}
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if detail := e.Detail(); detail != "" {
		msg += ": " + detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap позволяет errors.Is находить как ошибку статуса, так и причину.
func (e *StatusError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel := statusSentinel(e.StatusCode); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Detail возвращает поле detail из тела ответа, если бэкенд его прислал.
func (e *StatusError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if len(e.Body) == 0 || json.Unmarshal(e.Body, &payload) != nil {
		return ""
	}
	return payload.Detail
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusBadRequest:
		return ErrBadRequest
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}
