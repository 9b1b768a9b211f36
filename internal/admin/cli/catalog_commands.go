package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"albuhara/internal/admin/domain/entities"
)

// ErrInvalidVariant - вариант размера не в формате PRICE:AZ:EN:RU.
var ErrInvalidVariant = errors.New("variant must be PRICE:AZ:EN:RU")

type summaryCommand struct {
	action
}

func (c *summaryCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	summary, err := catalog.Summary(c.ctx())
	if err != nil {
		return err
	}
	return c.printf("categories: %d\nitems: %d\n", summary.Categories, summary.Items)
}

type categoriesCommand struct {
	List   categoriesListCommand   `command:"list" description:"List categories"`
	Create categoriesCreateCommand `command:"create" description:"Create a category"`
	Update categoriesUpdateCommand `command:"update" description:"Rename a category"`
	Delete categoriesDeleteCommand `command:"delete" description:"Delete a category"`
}

type categoriesListCommand struct {
	action
	Page     int `long:"page" default:"1" description:"page number"`
	PageSize int `long:"page-size" default:"10" description:"page size"`
}

func (c *categoriesListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	page, err := catalog.ListCategories(c.ctx(), c.Page, c.PageSize)
	if err != nil {
		return err
	}
	return c.printJSON(page)
}

type categoriesCreateCommand struct {
	action
	Args struct {
		Title string `positional-arg-name:"title" required:"yes"`
	} `positional-args:"yes"`
}

func (c *categoriesCreateCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	category, err := catalog.CreateCategory(c.ctx(), c.Args.Title)
	if err != nil {
		return err
	}
	return c.printJSON(category)
}

type categoriesUpdateCommand struct {
	action
	ID    int    `long:"id" required:"true" description:"category id"`
	Title string `long:"title" required:"true" description:"new title"`
}

func (c *categoriesUpdateCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	category, err := catalog.UpdateCategory(c.ctx(), c.ID, c.Title)
	if err != nil {
		return err
	}
	return c.printJSON(category)
}

type categoriesDeleteCommand struct {
	action
	ID int `long:"id" required:"true" description:"category id"`
}

func (c *categoriesDeleteCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	if err := catalog.DeleteCategory(c.ctx(), c.ID); err != nil {
		return err
	}
	return c.printf("category %d deleted\n", c.ID)
}

type itemsCommand struct {
	List   itemsListCommand   `command:"list" description:"List menu items"`
	Create itemsCreateCommand `command:"create" description:"Create a menu item"`
	Update itemsUpdateCommand `command:"update" description:"Replace a menu item"`
	Delete itemsDeleteCommand `command:"delete" description:"Delete a menu item"`
}

type itemsListCommand struct {
	action
	Page   int    `long:"page" default:"1" description:"page number"`
	Search string `long:"search" description:"filter by name"`
}

func (c *itemsListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	page, err := catalog.ListItems(c.ctx(), c.Page, c.Search)
	if err != nil {
		return err
	}
	return c.printJSON(page)
}

// itemFlags - поля формы блюда.
type itemFlags struct {
	Category  int      `long:"category" description:"category id"`
	NameAz    string   `long:"name-az" description:"name in Azerbaijani"`
	NameEn    string   `long:"name-en" description:"name in English"`
	NameRu    string   `long:"name-ru" description:"name in Russian"`
	DescAz    string   `long:"description-az" description:"description in Azerbaijani"`
	DescEn    string   `long:"description-en" description:"description in English"`
	DescRu    string   `long:"description-ru" description:"description in Russian"`
	New       bool     `long:"new" description:"mark as new"`
	Vegan     bool     `long:"vegan" description:"mark as vegan"`
	BasePrice string   `long:"price" description:"price of a single-size item"`
	Variants  []string `long:"variant" description:"size variant as PRICE:AZ:EN:RU, repeatable"`
	Image     string   `long:"image" description:"path to an image file"`
}

func (f *itemFlags) input() (entities.ItemInput, error) {
	in := entities.ItemInput{
		Category:    f.Category,
		Name:        entities.LocalizedText{Az: f.NameAz, En: f.NameEn, Ru: f.NameRu},
		Description: entities.LocalizedText{Az: f.DescAz, En: f.DescEn, Ru: f.DescRu},
		IsNew:       f.New,
		IsVegan:     f.Vegan,
		MultiSize:   len(f.Variants) > 0,
		BasePrice:   f.BasePrice,
	}
	for _, raw := range f.Variants {
		variant, err := parseVariant(raw)
		if err != nil {
			return entities.ItemInput{}, err
		}
		in.Variants = append(in.Variants, variant)
	}
	if f.Image != "" {
		upload, err := readUpload(f.Image)
		if err != nil {
			return entities.ItemInput{}, err
		}
		in.Image = &upload
	}
	return in, nil
}

func parseVariant(raw string) (entities.Variant, error) {
	parts := strings.SplitN(raw, ":", 4)
	if len(parts) != 4 || parts[0] == "" {
		return entities.Variant{}, fmt.Errorf("%w: %q", ErrInvalidVariant, raw)
	}
	return entities.Variant{
		Price: parts[0],
		Size:  entities.LocalizedText{Az: parts[1], En: parts[2], Ru: parts[3]},
	}, nil
}

type itemsCreateCommand struct {
	action
	itemFlags
}

func (c *itemsCreateCommand) Execute([]string) error {
	in, err := c.input()
	if err != nil {
		return err
	}
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	item, err := catalog.CreateItem(c.ctx(), in)
	if err != nil {
		return err
	}
	return c.printJSON(item)
}

type itemsUpdateCommand struct {
	action
	itemFlags
	ID int `long:"id" required:"true" description:"item id"`
}

func (c *itemsUpdateCommand) Execute([]string) error {
	in, err := c.input()
	if err != nil {
		return err
	}
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	item, err := catalog.UpdateItem(c.ctx(), c.ID, in)
	if err != nil {
		return err
	}
	return c.printJSON(item)
}

type itemsDeleteCommand struct {
	action
	ID int `long:"id" required:"true" description:"item id"`
}

func (c *itemsDeleteCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	if err := catalog.DeleteItem(c.ctx(), c.ID); err != nil {
		return err
	}
	return c.printf("item %d deleted\n", c.ID)
}

type decorCommand struct {
	List decorListCommand `command:"list" description:"List decor images"`
	Set  decorSetCommand  `command:"set" description:"Replace one decor image"`
}

type decorListCommand struct {
	action
}

func (c *decorListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	decor, err := catalog.ListDecor(c.ctx())
	if err != nil {
		return err
	}
	return c.printJSON(decor)
}

type decorSetCommand struct {
	action
	ID    int    `long:"id" required:"true" description:"decor id"`
	Field string `long:"field" required:"true" choice:"image1" choice:"image2" choice:"image3" description:"image field"`
	Image string `long:"image" required:"true" description:"path to an image file"`
}

func (c *decorSetCommand) Execute([]string) error {
	upload, err := readUpload(c.Image)
	if err != nil {
		return err
	}
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	decor, err := catalog.UpdateDecorImage(c.ctx(), c.ID, entities.DecorField(c.Field), upload)
	if err != nil {
		return err
	}
	return c.printJSON(decor)
}

type slidesCommand struct {
	List   slidesListCommand   `command:"list" description:"List slider images"`
	Add    slidesAddCommand    `command:"add" description:"Upload a slider image"`
	Delete slidesDeleteCommand `command:"delete" description:"Delete a slider image"`
}

type sliderFlag struct {
	Position string `long:"position" required:"true" choice:"top" choice:"bottom" description:"slider position"`
}

type slidesListCommand struct {
	action
	sliderFlag
}

func (c *slidesListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	slides, err := catalog.ListSlides(c.ctx(), entities.SliderPosition(c.Position))
	if err != nil {
		return err
	}
	return c.printJSON(slides)
}

type slidesAddCommand struct {
	action
	sliderFlag
	Image string `long:"image" required:"true" description:"path to an image file"`
}

func (c *slidesAddCommand) Execute([]string) error {
	upload, err := readUpload(c.Image)
	if err != nil {
		return err
	}
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	slide, err := catalog.AddSlide(c.ctx(), entities.SliderPosition(c.Position), upload)
	if err != nil {
		return err
	}
	return c.printJSON(slide)
}

type slidesDeleteCommand struct {
	action
	sliderFlag
	ID int `long:"id" required:"true" description:"slide id"`
}

func (c *slidesDeleteCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	if err := catalog.DeleteSlide(c.ctx(), entities.SliderPosition(c.Position), c.ID); err != nil {
		return err
	}
	return c.printf("slide %d deleted\n", c.ID)
}

type aboutCommand struct {
	List aboutListCommand `command:"list" description:"List about section images"`
	Set  aboutSetCommand  `command:"set" description:"Create or replace an about section image"`
}

type aboutListCommand struct {
	action
}

func (c *aboutListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	about, err := catalog.ListAbout(c.ctx())
	if err != nil {
		return err
	}
	return c.printJSON(about)
}

type aboutSetCommand struct {
	action
	ID    int    `long:"id" description:"entry to replace, omit to create"`
	Image string `long:"image" required:"true" description:"path to an image file"`
}

func (c *aboutSetCommand) Execute([]string) error {
	upload, err := readUpload(c.Image)
	if err != nil {
		return err
	}
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	about, err := catalog.SaveAboutImage(c.ctx(), c.ID, upload)
	if err != nil {
		return err
	}
	return c.printJSON(about)
}

type contactCommand struct {
	List   contactListCommand   `command:"list" description:"Show contact information"`
	Update contactUpdateCommand `command:"update" description:"Update contact information"`
}

type contactListCommand struct {
	action
}

func (c *contactListCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	contacts, err := catalog.ListContacts(c.ctx())
	if err != nil {
		return err
	}
	return c.printJSON(contacts)
}

type contactUpdateCommand struct {
	action
	ID           int    `long:"id" required:"true" description:"contact id"`
	Address      string `long:"address" description:"street address"`
	Phone        string `long:"phone" description:"phone number"`
	Email        string `long:"email" description:"email address"`
	WorkingHours string `long:"hours" description:"working hours"`
}

func (c *contactUpdateCommand) Execute([]string) error {
	catalog, err := c.catalog()
	if err != nil {
		return err
	}
	contact, err := catalog.UpdateContact(c.ctx(), entities.Contact{
		ID:           c.ID,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		WorkingHours: c.WorkingHours,
	})
	if err != nil {
		return err
	}
	return c.printJSON(contact)
}

func readUpload(path string) (entities.Upload, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return entities.Upload{}, fmt.Errorf("reading image: %w", err)
	}
	return entities.Upload{Filename: filepath.Base(path), Data: data}, nil
}
