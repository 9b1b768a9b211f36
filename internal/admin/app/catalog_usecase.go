package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/admin/ports/api"
	svc "albuhara/internal/admin/ports/services"
	"albuhara/pkg/logger"
)

const (
	pathCategories   = "/api/categories/"
	pathItems        = "/api/items/"
	pathDecor        = "/api/decor/"
	pathAboutSection = "/api/about-section/"
	pathContact      = "/api/contact/"
	pathSliderPrefix = "/api/home-slider-"

	msgResourceChanged = "catalog resource changed"

	errCtxValidating = "validating input"
	errCtxDecoding   = "decoding response"
)

// CatalogUseCaseImpl реализует api.CatalogUseCase через APIClient.
type CatalogUseCaseImpl struct {
	client svc.APIClient
}

// NewCatalogUseCase создает сценарий каталога.
func NewCatalogUseCase(client svc.APIClient) api.CatalogUseCase {
	return &CatalogUseCaseImpl{client: client}
}

// Summary считает категории и позиции меню.
func (c *CatalogUseCaseImpl) Summary(ctx context.Context) (entities.Summary, error) {
	categories, err := c.ListCategories(ctx, 0, 0)
	if err != nil {
		return entities.Summary{}, err
	}
	items, err := c.ListItems(ctx, 0, "")
	if err != nil {
		return entities.Summary{}, err
	}
	return entities.Summary{Categories: categories.Count, Items: items.Count}, nil
}

// ListCategories возвращает страницу категорий. Нулевые page и pageSize не передаются.
func (c *CatalogUseCaseImpl) ListCategories(ctx context.Context, page, pageSize int) (*entities.Page[entities.Category], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return getJSON[entities.Page[entities.Category]](ctx, c.client, pathCategories, query)
}

// CreateCategory создает категорию.
func (c *CatalogUseCaseImpl) CreateCategory(ctx context.Context, title string) (*entities.Category, error) {
	if title == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrEmptyTitle)
	}
	return sendJSON[entities.Category](ctx, c.client.Post, pathCategories, map[string]string{"title": title})
}

// UpdateCategory переименовывает категорию.
func (c *CatalogUseCaseImpl) UpdateCategory(ctx context.Context, id int, title string) (*entities.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidID)
	}
	if title == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrEmptyTitle)
	}
	return sendJSON[entities.Category](ctx, c.client.Put, resourcePath(pathCategories, id), map[string]string{"title": title})
}

// DeleteCategory удаляет категорию.
func (c *CatalogUseCaseImpl) DeleteCategory(ctx context.Context, id int) error {
	return c.remove(ctx, pathCategories, id)
}

// ListItems возвращает страницу позиций меню с поиском по названию.
func (c *CatalogUseCaseImpl) ListItems(ctx context.Context, page int, search string) (*entities.Page[entities.Item], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		query.Set("search", search)
	}
	return getJSON[entities.Page[entities.Item]](ctx, c.client, pathItems, query)
}

// CreateItem создает позицию меню.
func (c *CatalogUseCaseImpl) CreateItem(ctx context.Context, in entities.ItemInput) (*entities.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	body, err := itemForm(in)
	if err != nil {
		return nil, err
	}
	return sendJSON[entities.Item](ctx, c.client.Post, pathItems, body)
}

// UpdateItem заменяет поля позиции меню.
func (c *CatalogUseCaseImpl) UpdateItem(ctx context.Context, id int, in entities.ItemInput) (*entities.Item, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidID)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	body, err := itemForm(in)
	if err != nil {
		return nil, err
	}
	return sendJSON[entities.Item](ctx, c.client.Put, resourcePath(pathItems, id), body)
}

// DeleteItem удаляет позицию меню.
func (c *CatalogUseCaseImpl) DeleteItem(ctx context.Context, id int) error {
	return c.remove(ctx, pathItems, id)
}

// ListDecor возвращает наборы декоративных изображений.
func (c *CatalogUseCaseImpl) ListDecor(ctx context.Context) ([]entities.Decor, error) {
	return listJSON[entities.Decor](ctx, c.client, pathDecor)
}

// UpdateDecorImage заменяет одно изображение набора.
func (c *CatalogUseCaseImpl) UpdateDecorImage(
	ctx context.Context, id int, field entities.DecorField, img entities.Upload,
) (*entities.Decor, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidID)
	}
	if !field.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidDecorField)
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	body, err := imageForm(string(field), img)
	if err != nil {
		return nil, err
	}
	return sendJSON[entities.Decor](ctx, c.client.Patch, resourcePath(pathDecor, id), body)
}

// ListSlides возвращает изображения слайдера.
func (c *CatalogUseCaseImpl) ListSlides(ctx context.Context, pos entities.SliderPosition) ([]entities.Slide, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidSliderPosition)
	}
	return listJSON[entities.Slide](ctx, c.client, sliderPath(pos))
}

// AddSlide загружает изображение в слайдер.
func (c *CatalogUseCaseImpl) AddSlide(ctx context.Context, pos entities.SliderPosition, img entities.Upload) (*entities.Slide, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidSliderPosition)
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	body, err := imageForm("image", img)
	if err != nil {
		return nil, err
	}
	return sendJSON[entities.Slide](ctx, c.client.Post, sliderPath(pos), body)
}

// DeleteSlide удаляет изображение из слайдера.
func (c *CatalogUseCaseImpl) DeleteSlide(ctx context.Context, pos entities.SliderPosition, id int) error {
	if !pos.Valid() {
		return fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidSliderPosition)
	}
	return c.remove(ctx, sliderPath(pos), id)
}

// ListAbout возвращает изображения раздела "О нас".
func (c *CatalogUseCaseImpl) ListAbout(ctx context.Context) ([]entities.AboutSection, error) {
	return listJSON[entities.AboutSection](ctx, c.client, pathAboutSection)
}

// SaveAboutImage заменяет изображение с данным id или создает новое при id == 0.
func (c *CatalogUseCaseImpl) SaveAboutImage(ctx context.Context, id int, img entities.Upload) (*entities.AboutSection, error) {
	if id < 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidID)
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	body, err := imageForm("image", img)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return sendJSON[entities.AboutSection](ctx, c.client.Post, pathAboutSection, body)
	}
	return sendJSON[entities.AboutSection](ctx, c.client.Put, resourcePath(pathAboutSection, id), body)
}

// ListContacts возвращает контактную информацию.
func (c *CatalogUseCaseImpl) ListContacts(ctx context.Context) ([]entities.Contact, error) {
	return listJSON[entities.Contact](ctx, c.client, pathContact)
}

// UpdateContact заменяет контактную информацию.
func (c *CatalogUseCaseImpl) UpdateContact(ctx context.Context, contact entities.Contact) (*entities.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}
	return sendJSON[entities.Contact](ctx, c.client.Put, resourcePath(pathContact, contact.ID), contact)
}

func (c *CatalogUseCaseImpl) remove(ctx context.Context, collection string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%s: %w", errCtxValidating, entities.ErrInvalidID)
	}
	path := resourcePath(collection, id)
	if _, err := c.client.Delete(ctx, path); err != nil {
		return err
	}
	logger.Log(ctx).Info(ctx, msgResourceChanged, zap.String("method", "DELETE"), zap.String("path", path))
	return nil
}

type sendFunc func(ctx context.Context, path string, body any) (*apiclient.Response, error)

func sendJSON[T any](ctx context.Context, send sendFunc, path string, body any) (*T, error) {
	resp, err := send(ctx, path, body)
	if err != nil {
		return nil, err
	}
	logger.Log(ctx).Info(ctx, msgResourceChanged, zap.String("path", path), zap.Int("status", resp.StatusCode))
	return decode[T](resp)
}

func getJSON[T any](ctx context.Context, client svc.APIClient, path string, query url.Values) (*T, error) {
	resp, err := client.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

// listJSON читает список, отданный массивом или страницей.
func listJSON[T any](ctx context.Context, client svc.APIClient, path string) ([]T, error) {
	page, err := getJSON[entities.Page[T]](ctx, client, path, nil)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func decode[T any](resp *apiclient.Response) (*T, error) {
	var v T
	if err := resp.DecodeJSON(&v); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxDecoding, err)
	}
	return &v, nil
}

func resourcePath(collection string, id int) string {
	return collection + strconv.Itoa(id) + "/"
}

func sliderPath(pos entities.SliderPosition) string {
	return pathSliderPrefix + string(pos) + "/"
}
