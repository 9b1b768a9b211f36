// Package storage хранит ресурсы сайта тестового бэкенда в памяти.
package storage

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"albuhara/internal/admin/domain/entities"
)

// ErrNotFound возвращается для отсутствующей записи.
var ErrNotFound = errors.New("not found")

type table[T any] struct {
	rows []T
	id   func(*T) *int
}

func newTable[T any](id func(*T) *int) *table[T] {
	return &table[T]{id: id}
}

func (t *table[T]) list() []T {
	return slices.Clone(t.rows)
}

func (t *table[T]) insert(id int, row T) T {
	*t.id(&row) = id
	t.rows = append(t.rows, row)
	return row
}

func (t *table[T]) find(id int) (*T, bool) {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			return &t.rows[i], true
		}
	}
	return nil, false
}

func (t *table[T]) remove(id int) bool {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			t.rows = slices.Delete(t.rows, i, i+1)
			return true
		}
	}
	return false
}

// Catalog - потокобезопасное хранилище категорий, блюд и контента страниц.
type Catalog struct {
	mu     sync.RWMutex
	nextID int

	categories *table[entities.Category]
	items      *table[entities.Item]
	decor      *table[entities.Decor]
	about      *table[entities.AboutSection]
	contacts   *table[entities.Contact]
	slides     map[entities.SliderPosition]*table[entities.Slide]
}

// NewCatalog создает хранилище с одним набором декора и одной записью контактов,
// которые админка только изменяет.
func NewCatalog() *Catalog {
	slideID := func(s *entities.Slide) *int { return &s.ID }
	c := &Catalog{
		categories: newTable(func(v *entities.Category) *int { return &v.ID }),
		items:      newTable(func(v *entities.Item) *int { return &v.ID }),
		decor:      newTable(func(v *entities.Decor) *int { return &v.ID }),
		about:      newTable(func(v *entities.AboutSection) *int { return &v.ID }),
		contacts:   newTable(func(v *entities.Contact) *int { return &v.ID }),
		slides: map[entities.SliderPosition]*table[entities.Slide]{
			entities.SliderTop:    newTable(slideID),
			entities.SliderBottom: newTable(slideID),
		},
	}
	c.decor.insert(c.allocID(), entities.Decor{})
	c.contacts.insert(c.allocID(), entities.Contact{})
	return c
}

func (c *Catalog) allocID() int {
	c.nextID++
	return c.nextID
}

// Categories возвращает все категории.
func (c *Catalog) Categories() []entities.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories.list()
}

// CreateCategory добавляет категорию.
func (c *Catalog) CreateCategory(title string) entities.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories.insert(c.allocID(), entities.Category{Title: title})
}

// UpdateCategory меняет название категории.
func (c *Catalog) UpdateCategory(id int, title string) (entities.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.categories.find(id)
	if !ok {
		return entities.Category{}, ErrNotFound
	}
	row.Title = title
	return *row, nil
}

// DeleteCategory удаляет категорию.
func (c *Catalog) DeleteCategory(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.categories.remove(id) {
		return ErrNotFound
	}
	return nil
}

// Items возвращает блюда, у которых название на любом языке содержит search.
func (c *Catalog) Items(search string) []entities.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := c.items.list()
	if search == "" {
		return items
	}
	needle := strings.ToLower(search)
	return slices.DeleteFunc(items, func(it entities.Item) bool {
		for _, name := range []string{it.Name.Az, it.Name.En, it.Name.Ru} {
			if strings.Contains(strings.ToLower(name), needle) {
				return false
			}
		}
		return true
	})
}

// CreateItem добавляет блюдо.
func (c *Catalog) CreateItem(item entities.Item) entities.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.insert(c.allocID(), item)
}

// UpdateItem заменяет блюдо. Пустое Image сохраняет текущее изображение.
func (c *Catalog) UpdateItem(id int, item entities.Item) (entities.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.items.find(id)
	if !ok {
		return entities.Item{}, ErrNotFound
	}
	item.ID = id
	if item.Image == "" {
		item.Image = row.Image
	}
	*row = item
	return item, nil
}

// DeleteItem удаляет блюдо.
func (c *Catalog) DeleteItem(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.items.remove(id) {
		return ErrNotFound
	}
	return nil
}

// Decor возвращает наборы декора.
func (c *Catalog) Decor() []entities.Decor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.decor.list()
}

// UpdateDecor заменяет одно изображение набора.
func (c *Catalog) UpdateDecor(id int, field entities.DecorField, image string) (entities.Decor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.decor.find(id)
	if !ok {
		return entities.Decor{}, ErrNotFound
	}
	switch field {
	case entities.DecorImage1:
		row.Image1 = image
	case entities.DecorImage2:
		row.Image2 = image
	case entities.DecorImage3:
		row.Image3 = image
	}
	return *row, nil
}

// Slides возвращает изображения слайдера.
func (c *Catalog) Slides(pos entities.SliderPosition) []entities.Slide {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slides[pos].list()
}

// AddSlide добавляет изображение в слайдер.
func (c *Catalog) AddSlide(pos entities.SliderPosition, image string) entities.Slide {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slides[pos].insert(c.allocID(), entities.Slide{Image: image})
}

// DeleteSlide удаляет изображение из слайдера.
func (c *Catalog) DeleteSlide(pos entities.SliderPosition, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.slides[pos].remove(id) {
		return ErrNotFound
	}
	return nil
}

// About возвращает изображения раздела "О нас".
func (c *Catalog) About() []entities.AboutSection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.about.list()
}

// CreateAbout добавляет изображение раздела "О нас".
func (c *Catalog) CreateAbout(image string) entities.AboutSection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.about.insert(c.allocID(), entities.AboutSection{Image: image})
}

// UpdateAbout заменяет изображение раздела "О нас".
func (c *Catalog) UpdateAbout(id int, image string) (entities.AboutSection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.about.find(id)
	if !ok {
		return entities.AboutSection{}, ErrNotFound
	}
	row.Image = image
	return *row, nil
}

// Contacts возвращает контактную информацию.
func (c *Catalog) Contacts() []entities.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contacts.list()
}

// UpdateContact заменяет запись контактов.
func (c *Catalog) UpdateContact(contact entities.Contact) (entities.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.contacts.find(contact.ID)
	if !ok {
		return entities.Contact{}, ErrNotFound
	}
	*row = contact
	return contact, nil
}
