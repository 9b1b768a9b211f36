package entities

// Upload - файл изображения для multipart-запроса.
type Upload struct {
	Filename string
	Data     []byte
}

// Validate проверяет, что файл не пустой.
func (u Upload) Validate() error {
	if len(u.Data) == 0 {
		return ErrEmptyUpload
	}
	return nil
}

// ItemInput - поля формы создания и изменения позиции меню.
// Image может отсутствовать: бэкенд оставит текущее изображение.
type ItemInput struct {
	Category    int
	Name        LocalizedText
	Description LocalizedText
	IsNew       bool
	IsVegan     bool
	MultiSize   bool
	BasePrice   string
	Variants    []Variant
	Image       *Upload
}

// Validate проверяет согласованность цены и вариантов.
func (in ItemInput) Validate() error {
	if in.Category <= 0 {
		return ErrMissingCategory
	}
	if in.MultiSize && len(in.Variants) == 0 {
		return ErrMissingVariants
	}
	if !in.MultiSize && in.BasePrice == "" {
		return ErrMissingBasePrice
	}
	if in.Image != nil {
		return in.Image.Validate()
	}
	return nil
}

// Validate проверяет, что заполнены все поля контакта.
func (c Contact) Validate() error {
	if c.ID <= 0 {
		return ErrInvalidID
	}
	if c.Address == "" || c.Phone == "" || c.Email == "" || c.WorkingHours == "" {
		return ErrIncompleteContactField
	}
	return nil
}

// Summary - счетчики для главной страницы админки.
type Summary struct {
	Categories int
	Items      int
}
