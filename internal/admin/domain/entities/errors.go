package entities

import "errors"

// Ошибки проверки данных каталога до отправки на бэкенд.
var (
	ErrEmptyTitle             = errors.New("title cannot be empty")
	ErrEmptyUsername          = errors.New("username cannot be empty")
	ErrEmptyPassword          = errors.New("password cannot be empty")
	ErrInvalidID              = errors.New("id must be positive")
	ErrInvalidDecorField      = errors.New("decor field must be one of image1, image2, image3")
	ErrInvalidSliderPosition  = errors.New("slider position must be top or bottom")
	ErrEmptyUpload            = errors.New("upload has no content")
	ErrMissingCategory        = errors.New("item category is required")
	ErrMissingBasePrice       = errors.New("single-size item requires a base price")
	ErrMissingVariants        = errors.New("multi-size item requires at least one variant")
	ErrIncompleteContactField = errors.New("contact requires address, phone, email and working hours")
)
