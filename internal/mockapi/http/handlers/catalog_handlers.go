package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/mockapi/http/middleware"
	"albuhara/internal/mockapi/storage"
	"albuhara/pkg/logger"
)

const (
	mediaPrefix = "/media/"

	ErrMsgTitleRequired  = "title is required"
	ErrMsgInvalidField   = "invalid value"
	ErrMsgImageRequired  = "No file was submitted."
	ErrMsgUnknownSlider  = "unknown slider"
	ErrMsgUnknownDecor   = "no decor image submitted"
	LogHandlerCatalog    = "handling catalog request"
	LogCatalogWriteError = "catalog write failed"
)

// CatalogHandler обслуживает ресурсы сайта.
type CatalogHandler struct {
	catalog *storage.Catalog
}

// NewCatalogHandler создает обработчик каталога.
func NewCatalogHandler(catalog *storage.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type categoryRequest struct {
	Title string `json:"title"`
}

// ListCategories возвращает страницу категорий.
func (h *CatalogHandler) ListCategories(c fiber.Ctx) error {
	page, ok := paginate(c, h.catalog.Categories())
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgInvalidPagination)
	}
	return c.JSON(page)
}

// CreateCategory создает категорию.
func (h *CatalogHandler) CreateCategory(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"title": []string{DetailFieldRequired}})
	}
	h.logWrite(c)
	return c.Status(fiber.StatusCreated).JSON(h.catalog.CreateCategory(req.Title))
}

// UpdateCategory переименовывает категорию.
func (h *CatalogHandler) UpdateCategory(c fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	var req categoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"title": []string{DetailFieldRequired}})
	}

	h.logWrite(c)
	category, err := h.catalog.UpdateCategory(id, req.Title)
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory удаляет категорию.
func (h *CatalogHandler) DeleteCategory(c fiber.Ctx) error {
	return h.deleteByID(c, h.catalog.DeleteCategory)
}

// ListItems возвращает страницу блюд с поиском по названию.
func (h *CatalogHandler) ListItems(c fiber.Ctx) error {
	page, ok := paginate(c, h.catalog.Items(c.Query("search")))
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgInvalidPagination)
	}
	return c.JSON(page)
}

// CreateItem создает блюдо из multipart-формы.
func (h *CatalogHandler) CreateItem(c fiber.Ctx) error {
	item, fieldErr := parseItemForm(c)
	if fieldErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErr)
	}
	h.logWrite(c)
	return c.Status(fiber.StatusCreated).JSON(h.catalog.CreateItem(item))
}

// UpdateItem заменяет блюдо.
func (h *CatalogHandler) UpdateItem(c fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	item, fieldErr := parseItemForm(c)
	if fieldErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErr)
	}

	h.logWrite(c)
	updated, err := h.catalog.UpdateItem(id, item)
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(updated)
}

// DeleteItem удаляет блюдо.
func (h *CatalogHandler) DeleteItem(c fiber.Ctx) error {
	return h.deleteByID(c, h.catalog.DeleteItem)
}

// ListDecor возвращает наборы декора.
func (h *CatalogHandler) ListDecor(c fiber.Ctx) error {
	return c.JSON(h.catalog.Decor())
}

// PatchDecor заменяет присланные изображения набора.
func (h *CatalogHandler) PatchDecor(c fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}

	var (
		decor   entities.Decor
		err     error
		patched bool
	)
	h.logWrite(c)
	for _, field := range []entities.DecorField{entities.DecorImage1, entities.DecorImage2, entities.DecorImage3} {
		file, ferr := c.FormFile(string(field))
		if ferr != nil {
			continue
		}
		decor, err = h.catalog.UpdateDecor(id, field, mediaPath(file))
		if err != nil {
			return h.storageError(c, err)
		}
		patched = true
	}
	if !patched {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgUnknownDecor)
	}
	return c.JSON(decor)
}

// ListSlides возвращает изображения слайдера из параметра :position.
func (h *CatalogHandler) ListSlides(c fiber.Ctx) error {
	pos, ok := sliderPosition(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgUnknownSlider)
	}
	return c.JSON(h.catalog.Slides(pos))
}

// AddSlide загружает изображение в слайдер.
func (h *CatalogHandler) AddSlide(c fiber.Ctx) error {
	pos, ok := sliderPosition(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgUnknownSlider)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"image": []string{ErrMsgImageRequired}})
	}
	h.logWrite(c)
	return c.Status(fiber.StatusCreated).JSON(h.catalog.AddSlide(pos, mediaPath(file)))
}

// DeleteSlide удаляет изображение из слайдера.
func (h *CatalogHandler) DeleteSlide(c fiber.Ctx) error {
	pos, ok := sliderPosition(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgUnknownSlider)
	}
	return h.deleteByID(c, func(id int) error { return h.catalog.DeleteSlide(pos, id) })
}

// ListAbout возвращает изображения раздела "О нас".
func (h *CatalogHandler) ListAbout(c fiber.Ctx) error {
	return c.JSON(h.catalog.About())
}

// CreateAbout добавляет изображение раздела "О нас".
func (h *CatalogHandler) CreateAbout(c fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"image": []string{ErrMsgImageRequired}})
	}
	h.logWrite(c)
	return c.Status(fiber.StatusCreated).JSON(h.catalog.CreateAbout(mediaPath(file)))
}

// UpdateAbout заменяет изображение раздела "О нас".
func (h *CatalogHandler) UpdateAbout(c fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"image": []string{ErrMsgImageRequired}})
	}

	h.logWrite(c)
	about, err := h.catalog.UpdateAbout(id, mediaPath(file))
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(about)
}

// ListContacts возвращает контактную информацию.
func (h *CatalogHandler) ListContacts(c fiber.Ctx) error {
	return c.JSON(h.catalog.Contacts())
}

// UpdateContact заменяет контактную информацию.
func (h *CatalogHandler) UpdateContact(c fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	var contact entities.Contact
	if err := c.Bind().JSON(&contact); err != nil {
		return sendDetail(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	contact.ID = id

	h.logWrite(c)
	updated, err := h.catalog.UpdateContact(contact)
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) deleteByID(c fiber.Ctx, remove func(id int) error) error {
	id, ok := paramID(c)
	if !ok {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	h.logWrite(c)
	if err := remove(id); err != nil {
		return h.storageError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) logWrite(c fiber.Ctx) {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerCatalog,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("userID", middleware.UserID(c)))
}

func (h *CatalogHandler) storageError(c fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return sendDetail(c, fiber.StatusNotFound, ErrMsgNotFound)
	}
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Error(ctx, LogCatalogWriteError, zap.Error(err))
	return sendDetail(c, fiber.StatusInternalServerError, ErrMsgInternal)
}

func sliderPosition(c fiber.Ctx) (entities.SliderPosition, bool) {
	pos := entities.SliderPosition(c.Params("position"))
	return pos, pos.Valid()
}

func mediaPath(file *multipart.FileHeader) string {
	return mediaPrefix + filepath.Base(file.Filename)
}

// parseItemForm читает поля блюда. Вложенные значения приходят строками JSON.
func parseItemForm(c fiber.Ctx) (entities.Item, fiber.Map) {
	errs := fiber.Map{}
	var item entities.Item

	category, err := strconv.Atoi(c.FormValue("category"))
	if err != nil || category <= 0 {
		errs["category"] = []string{ErrMsgInvalidField}
	}
	item.Category = category

	if err := json.Unmarshal([]byte(c.FormValue("name")), &item.Name); err != nil {
		errs["name"] = []string{ErrMsgInvalidField}
	}
	if raw := c.FormValue("description"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &item.Description); err != nil {
			errs["description"] = []string{ErrMsgInvalidField}
		}
	}

	item.IsNew = c.FormValue("is_new") == "true"
	item.IsVegan = c.FormValue("is_vegan") == "true"
	item.MultiSize = c.FormValue("multi_size") == "true"

	if item.MultiSize {
		if err := json.Unmarshal([]byte(c.FormValue("variants")), &item.Variants); err != nil || len(item.Variants) == 0 {
			errs["variants"] = []string{DetailFieldRequired}
		}
	} else {
		item.BasePrice = c.FormValue("base_price")
		if item.BasePrice == "" {
			errs["base_price"] = []string{DetailFieldRequired}
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		item.Image = mediaPath(file)
	}

	if len(errs) > 0 {
		return entities.Item{}, errs
	}
	return item, nil
}
