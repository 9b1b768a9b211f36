package api

import (
	"context"

	"albuhara/internal/admin/domain/entities"
)

// CatalogUseCase - операции над ресурсами сайта, которые правит админка.
type CatalogUseCase interface {
	Summary(ctx context.Context) (entities.Summary, error)

	ListCategories(ctx context.Context, page, pageSize int) (*entities.Page[entities.Category], error)
	CreateCategory(ctx context.Context, title string) (*entities.Category, error)
	UpdateCategory(ctx context.Context, id int, title string) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	ListItems(ctx context.Context, page int, search string) (*entities.Page[entities.Item], error)
	CreateItem(ctx context.Context, in entities.ItemInput) (*entities.Item, error)
	UpdateItem(ctx context.Context, id int, in entities.ItemInput) (*entities.Item, error)
	DeleteItem(ctx context.Context, id int) error

	ListDecor(ctx context.Context) ([]entities.Decor, error)
	UpdateDecorImage(ctx context.Context, id int, field entities.DecorField, img entities.Upload) (*entities.Decor, error)

	ListSlides(ctx context.Context, pos entities.SliderPosition) ([]entities.Slide, error)
	AddSlide(ctx context.Context, pos entities.SliderPosition, img entities.Upload) (*entities.Slide, error)
	DeleteSlide(ctx context.Context, pos entities.SliderPosition, id int) error

	ListAbout(ctx context.Context) ([]entities.AboutSection, error)
	SaveAboutImage(ctx context.Context, id int, img entities.Upload) (*entities.AboutSection, error)

	ListContacts(ctx context.Context) ([]entities.Contact, error)
	UpdateContact(ctx context.Context, contact entities.Contact) (*entities.Contact, error)
}
