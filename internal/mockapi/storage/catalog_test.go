package storage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albuhara/internal/admin/domain/entities"
	"albuhara/internal/mockapi/storage"
)

func TestCatalog_Seed(t *testing.T) {
	c := storage.NewCatalog()

	require.Len(t, c.Decor(), 1)
	require.Len(t, c.Contacts(), 1)
	assert.Empty(t, c.Categories())
	assert.Empty(t, c.Slides(entities.SliderTop))
	assert.NotEqual(t, c.Decor()[0].ID, c.Contacts()[0].ID)
}

func TestCatalog_Categories(t *testing.T) {
	c := storage.NewCatalog()

	soups := c.CreateCategory("Soups")
	kebab := c.CreateCategory("Kebab")
	assert.NotEqual(t, soups.ID, kebab.ID)

	updated, err := c.UpdateCategory(soups.ID, "Hot soups")
	require.NoError(t, err)
	assert.Equal(t, "Hot soups", updated.Title)

	require.NoError(t, c.DeleteCategory(kebab.ID))
	assert.Equal(t, []entities.Category{{ID: soups.ID, Title: "Hot soups"}}, c.Categories())

	_, err = c.UpdateCategory(kebab.ID, "x")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, c.DeleteCategory(kebab.ID), storage.ErrNotFound)
}

func TestCatalog_ItemsSearchAndImage(t *testing.T) {
	c := storage.NewCatalog()

	plov := c.CreateItem(entities.Item{Category: 1, Name: entities.LocalizedText{Az: "Plov", Ru: "Плов"}, Image: "/media/plov.jpg"})
	c.CreateItem(entities.Item{Category: 1, Name: entities.LocalizedText{En: "Dolma"}})

	assert.Len(t, c.Items(""), 2)
	found := c.Items("плов")
	require.Len(t, found, 1)
	assert.Equal(t, plov.ID, found[0].ID)

	updated, err := c.UpdateItem(plov.ID, entities.Item{Category: 2, Name: plov.Name})
	require.NoError(t, err)
	assert.Equal(t, "/media/plov.jpg", updated.Image)
	assert.Equal(t, 2, updated.Category)
	assert.Len(t, c.Items(""), 2)

	require.NoError(t, c.DeleteItem(plov.ID))
	assert.ErrorIs(t, c.DeleteItem(plov.ID), storage.ErrNotFound)
}

func TestCatalog_PageContent(t *testing.T) {
	c := storage.NewCatalog()
	decorID := c.Decor()[0].ID

	decor, err := c.UpdateDecor(decorID, entities.DecorImage3, "/media/d3.png")
	require.NoError(t, err)
	assert.Equal(t, "/media/d3.png", decor.Image3)
	assert.Empty(t, decor.Image1)

	top := c.AddSlide(entities.SliderTop, "/media/s1.png")
	assert.Empty(t, c.Slides(entities.SliderBottom))
	assert.ErrorIs(t, c.DeleteSlide(entities.SliderBottom, top.ID), storage.ErrNotFound)
	require.NoError(t, c.DeleteSlide(entities.SliderTop, top.ID))

	about := c.CreateAbout("/media/a.png")
	updatedAbout, err := c.UpdateAbout(about.ID, "/media/b.png")
	require.NoError(t, err)
	assert.Equal(t, "/media/b.png", updatedAbout.Image)

	contact := c.Contacts()[0]
	contact.Phone = "+994 12 000 00 00"
	_, err = c.UpdateContact(contact)
	require.NoError(t, err)
	assert.Equal(t, "+994 12 000 00 00", c.Contacts()[0].Phone)

	_, err = c.UpdateContact(entities.Contact{ID: 999})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_ListsAreCopies(t *testing.T) {
	c := storage.NewCatalog()
	c.CreateCategory("Soups")

	list := c.Categories()
	list[0].Title = "changed"

	assert.Equal(t, "Soups", c.Categories()[0].Title)
}

func TestCatalog_ConcurrentWrites(t *testing.T) {
	c := storage.NewCatalog()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.CreateCategory("x")
		}()
	}
	wg.Wait()

	ids := make(map[int]bool)
	for _, cat := range c.Categories() {
		ids[cat.ID] = true
	}
	assert.Len(t, ids, 50)
}
