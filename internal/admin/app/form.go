package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"albuhara/internal/admin/adapters/apiclient"
	"albuhara/internal/admin/domain/entities"
)

const errCtxBuildingForm = "building multipart form"

// form собирает тело multipart/form-data целиком в памяти, чтобы запрос
// можно было повторить.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *form) field(name, value string) *form {
	if f.err == nil {
		f.err = f.w.WriteField(name, value)
	}
	return f
}

func (f *form) flag(name string, value bool) *form {
	return f.field(name, strconv.FormatBool(value))
}

func (f *form) jsonField(name string, value any) *form {
	if f.err != nil {
		return f
	}
	data, err := json.Marshal(value)
	if err != nil {
		f.err = err
		return f
	}
	return f.field(name, string(data))
}

func (f *form) file(name string, upload entities.Upload) *form {
	if f.err != nil {
		return f
	}
	filename := upload.Filename
	if filename == "" {
		filename = name
	}
	part, err := f.w.CreateFormFile(name, filename)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = part.Write(upload.Data)
	return f
}

func (f *form) payload() (apiclient.Payload, error) {
	if f.err != nil {
		return apiclient.Payload{}, fmt.Errorf("%s: %w", errCtxBuildingForm, f.err)
	}
	if err := f.w.Close(); err != nil {
		return apiclient.Payload{}, fmt.Errorf("%s: %w", errCtxBuildingForm, err)
	}
	return apiclient.Payload{ContentType: f.w.FormDataContentType(), Data: f.buf.Bytes()}, nil
}

func itemForm(in entities.ItemInput) (apiclient.Payload, error) {
	f := newForm().
		field("category", strconv.Itoa(in.Category)).
		jsonField("name", in.Name).
		jsonField("description", in.Description).
		flag("is_new", in.IsNew).
		flag("is_vegan", in.IsVegan).
		flag("multi_size", in.MultiSize)
	if in.Image != nil {
		f.file("image", *in.Image)
	}
	if in.MultiSize {
		f.jsonField("variants", in.Variants)
	} else {
		f.field("base_price", in.BasePrice)
	}
	return f.payload()
}

func imageForm(field string, upload entities.Upload) (apiclient.Payload, error) {
	return newForm().file(field, upload).payload()
}
