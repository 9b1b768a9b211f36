// Package apiclient - HTTP-клиент REST-бэкенда сайта. Клиент прикрепляет
// токен доступа к каждому запросу и после ответа 401 один раз обновляет
// токен и повторяет запрос.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"albuhara/internal/admin/ports/credentials"
	"albuhara/internal/admin/resilience"
)

// Значения по умолчанию.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultRefreshPath = "/api/auth/token/refresh/"
)

// Client - аутентифицированный клиент API.
type Client struct {
	base        *url.URL
	store       credentials.Store
	doer        Doer
	timeout     time.Duration
	refresher   TokenRefresher
	refreshPath string
	invalidator SessionInvalidator
	breaker     *resilience.CircuitBreaker
	limiter     *rate.Limiter
	extra       []Middleware

	flight  singleflight.Group
	handler Handler
}

// Option настраивает Client.
type Option func(*Client)

// WithDoer задает транспорт. По умолчанию *http.Client с таймаутом.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout задает таймаут транспорта по умолчанию.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRefresher задает источник новых токенов доступа.
func WithRefresher(refresher TokenRefresher) Option {
	return func(c *Client) {
		c.refresher = refresher
	}
}

// WithRefreshPath задает путь эндпоинта обновления для refresher по умолчанию.
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		c.refreshPath = path
	}
}

// WithSessionInvalidator задает получателя сигнала о потере сессии.
func WithSessionInvalidator(invalidator SessionInvalidator) Option {
	return func(c *Client) {
		c.invalidator = invalidator
	}
}

// WithCircuitBreaker включает стадию circuit breaker перед транспортом.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithRateLimiter ограничивает частоту запросов к бэкенду, включая повторы.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithMiddleware добавляет стадии между журналированием и восстановлением после 401.
func WithMiddleware(stages ...Middleware) Option {
	return func(c *Client) {
		c.extra = append(c.extra, stages...)
	}
}

// New создает клиент для бэкенда по адресу baseURL.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base:        base,
		store:       store,
		timeout:     DefaultTimeout,
		refreshPath: DefaultRefreshPath,
		invalidator: nopInvalidator{},
	}
	for _, opt := range options {
		opt(c)
	}

	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout}
	}
	if c.refresher == nil {
		c.refresher = NewTokenEndpoint(c.doer, "", c.URL(c.refreshPath))
	}

	stages := []Middleware{LoggingStage()}
	stages = append(stages, c.extra...)
	stages = append(stages, c.recoveryStage, BearerStage(c.store))
	if c.breaker != nil {
		stages = append(stages, BreakerStage(c.breaker))
	}
	if c.limiter != nil {
		stages = append(stages, RateLimitStage(c.limiter))
	}
	c.handler = Chain(transportHandler(c.doer, c.base), stages...)

	return c, nil
}

// URL возвращает абсолютный адрес для пути относительно базового.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.base.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

// Doer возвращает транспорт клиента.
func (c *Client) Doer() Doer {
	return c.doer
}

// Do выполняет запрос. Переданный req не изменяется. Ответ со статусом
// >= 400 возвращается вместе с *StatusError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	resp, err := c.handler(ctx, req.Clone())
	if err != nil {
		return resp, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return resp, newStatusError(req, resp, nil)
	}
	return resp, nil
}

// Get выполняет GET с параметрами query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	req, err := NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Query = query
	return c.Do(ctx, req)
}

// Post выполняет POST. body кодируется как в NewRequest.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, body)
}

// Put выполняет PUT.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, body)
}

// Patch выполняет PATCH.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.send(ctx, http.MethodPatch, path, body)
}

// Delete выполняет DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.send(ctx, http.MethodDelete, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := NewRequest(method, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return c.Do(ctx, req)
}
