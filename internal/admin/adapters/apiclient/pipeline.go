package apiclient

import "context"

// Handler выполняет запрос и возвращает ответ любого статуса.
// Ошибка означает, что ответа нет: транспорт, хранилище, circuit breaker.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Middleware оборачивает Handler: преобразует запрос или восстанавливает ответ.
type Middleware func(next Handler) Handler

// Chain собирает конвейер: первая стадия в списке - внешняя.
func Chain(h Handler, stages ...Middleware) Handler {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}
