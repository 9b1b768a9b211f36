package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"albuhara/internal/admin/domain/entities"
)

const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidID          = "invalid id"
	ErrMsgNotFound           = "Not found."
	ErrMsgInternal           = "Internal Server Error"
	ErrMsgInvalidPagination  = "Invalid page."

	defaultPageSize = 10
	maxPageSize     = 100
)

func sendDetail(c fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func paramID(c fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// paginate режет rows на страницы как PageNumberPagination в DRF.
func paginate[T any](c fiber.Ctx, rows []T) (entities.Page[T], bool) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return entities.Page[T]{}, false
	}
	size, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)

	start := (page - 1) * size
	if start > len(rows) || (start == len(rows) && page > 1) {
		return entities.Page[T]{}, false
	}
	end := min(start+size, len(rows))

	result := entities.Page[T]{Count: len(rows), Results: rows[start:end]}
	if result.Results == nil {
		result.Results = []T{}
	}
	if end < len(rows) {
		next := pageURL(c, page+1, size)
		result.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1, size)
		result.Previous = &prev
	}
	return result, true
}

func pageURL(c fiber.Ctx, page, size int) string {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(size))
	if search := c.Query("search"); search != "" {
		query.Set("search", search)
	}
	return c.BaseURL() + c.Path() + "?" + query.Encode()
}
