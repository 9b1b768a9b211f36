package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"

	bearerPrefix    = "Bearer "
	contentTypeJSON = "application/json"

	errEncodeBody = "failed to encode request body"
	errDecodeBody = "failed to decode response body"
)

// Request - буферизованное описание запроса. Тело хранится целиком,
// поэтому запрос можно повторить после обновления токена.
type Request struct {
	Method string
	// Path - путь относительно базового адреса или абсолютный URL.
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Payload - тело с явным типом содержимого, например multipart/form-data.
type Payload struct {
	ContentType string
	Data        []byte
}

// NewRequest собирает запрос. body кодируется в JSON, кроме Payload и []byte.
func NewRequest(method, path string, body any) (*Request, error) {
	req := &Request{
		Method: method,
		Path:   path,
		Header: make(http.Header),
	}
	req.Header.Set(headerAccept, contentTypeJSON)

	switch b := body.(type) {
	case nil:
	case Payload:
		req.Body = b.Data
		req.Header.Set(headerContentType, b.ContentType)
	case *Payload:
		req.Body = b.Data
		req.Header.Set(headerContentType, b.ContentType)
	case []byte:
		req.Body = b
		req.Header.Set(headerContentType, contentTypeJSON)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errEncodeBody, err)
		}
		req.Body = data
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	return req, nil
}

// Clone возвращает независимую копию запроса.
func (r *Request) Clone() *Request {
	clone := &Request{
		Method: r.Method,
		Path:   r.Path,
		Header: r.Header.Clone(),
	}
	if clone.Header == nil {
		clone.Header = make(http.Header)
	}
	if r.Query != nil {
		clone.Query = make(url.Values, len(r.Query))
		for k, v := range r.Query {
			clone.Query[k] = append([]string(nil), v...)
		}
	}
	if r.Body != nil {
		clone.Body = bytes.Clone(r.Body)
	}
	return clone
}

// SetBearer устанавливает заголовок Authorization.
func (r *Request) SetBearer(token string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(headerAuthorization, bearerPrefix+token)
}

// Bearer возвращает токен из заголовка Authorization или пустую строку.
func (r *Request) Bearer() string {
	if r.Header == nil {
		return ""
	}
	value := r.Header.Get(headerAuthorization)
	if !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(value, bearerPrefix)
}

// Response - ответ бэкенда с полностью прочитанным телом.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON декодирует тело ответа в v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%s: %w", errDecodeBody, err)
	}
	return nil
}
