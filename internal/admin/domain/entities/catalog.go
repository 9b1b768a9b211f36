package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LocalizedText - текст на поддерживаемых сайтом языках.
type LocalizedText struct {
	Az string `json:"Az"`
	En string `json:"En"`
	Ru string `json:"Ru"`
}

// Category - категория меню.
type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Variant - размер блюда со своей ценой.
type Variant struct {
	Size  LocalizedText `json:"size"`
	Price string        `json:"price"`
}

// Item - позиция меню.
type Item struct {
	ID          int           `json:"id"`
	Category    int           `json:"category"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	IsNew       bool          `json:"is_new"`
	IsVegan     bool          `json:"is_vegan"`
	Image       string        `json:"image,omitempty"`
	MultiSize   bool          `json:"multi_size"`
	BasePrice   string        `json:"base_price,omitempty"`
	Variants    []Variant     `json:"variants,omitempty"`
}

// Decor - набор из трех декоративных изображений.
type Decor struct {
	ID     int    `json:"id"`
	Image1 string `json:"image1"`
	Image2 string `json:"image2"`
	Image3 string `json:"image3"`
}

// DecorField - имя поля изображения в Decor.
type DecorField string

// Допустимые поля Decor.
const (
	DecorImage1 DecorField = "image1"
	DecorImage2 DecorField = "image2"
	DecorImage3 DecorField = "image3"
)

// Valid проверяет имя поля.
func (f DecorField) Valid() bool {
	switch f {
	case DecorImage1, DecorImage2, DecorImage3:
		return true
	}
	return false
}

// SliderPosition - слайдер главной страницы.
type SliderPosition string

// Слайдеры главной страницы.
const (
	SliderTop    SliderPosition = "top"
	SliderBottom SliderPosition = "bottom"
)

// Valid проверяет позицию слайдера.
func (p SliderPosition) Valid() bool {
	return p == SliderTop || p == SliderBottom
}

// Slide - изображение слайдера.
type Slide struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// AboutSection - изображение раздела "О нас".
type AboutSection struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// Contact - контактная информация ресторана.
type Contact struct {
	ID           int    `json:"id"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingHours string `json:"working_hours"`
}

// Page - страница списка в формате пагинации бэкенда.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// UnmarshalJSON принимает как объект страницы, так и голый массив:
// часть эндпоинтов отдается без пагинации.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []T
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return fmt.Errorf("decoding list: %w", err)
		}
		*p = Page[T]{Count: len(results), Results: results}
		return nil
	}

	var raw struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("decoding page: %w", err)
	}
	*p = Page[T]{Count: raw.Count, Next: raw.Next, Previous: raw.Previous, Results: raw.Results}
	return nil
}
