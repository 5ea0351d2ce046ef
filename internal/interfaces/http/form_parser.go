package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
)

var errInvalidForm = domain.NewValidationError("Invalid form data")

// parseCategoryForm lee el cuerpo como multipart, JSON o urlencoded, conservando qué campos vinieron.
// En multipart el archivo "image" se lee completo con límite maxImage.
func parseCategoryForm(c *fiber.Ctx, maxImage int64) (dto.CategoryForm, error) {
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		return parseMultipart(c, maxImage)
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		return parseJSON(c.Body())
	default:
		values := map[string]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = string(v)
		})
		return dto.NewCategoryForm(values), nil
	}
}

func parseMultipart(c *fiber.Ctx, maxImage int64) (dto.CategoryForm, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return dto.CategoryForm{}, errInvalidForm
	}
	values := make(map[string]string, len(mf.Value))
	for k, vs := range mf.Value {
		if len(vs) > 0 {
			values[k] = vs[0]
		}
	}
	form := dto.NewCategoryForm(values)
	if files := mf.File[dto.FieldImage]; len(files) > 0 && files[0].Size > 0 {
		data, err := readImage(files[0], maxImage)
		if err != nil {
			return dto.CategoryForm{}, err
		}
		form.Image = &dto.UploadedFile{Filename: files[0].Filename, Data: data}
	}
	return form, nil
}

func readImage(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, domain.ErrImageTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir imagen: %w", err)
	}
	defer src.Close()

	var r io.Reader = src
	if maxSize > 0 {
		r = io.LimitReader(src, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, domain.ErrImageTooLarge
	}
	return data, nil
}

// parseJSON acepta valores escalares; true/false y números se pasan a texto.
// Objetos y arrays se rechazan: un formulario no tiene campos anidados.
func parseJSON(body []byte) (dto.CategoryForm, error) {
	if len(body) == 0 {
		return dto.NewCategoryForm(nil), nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return dto.CategoryForm{}, errInvalidForm
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = x
		case bool:
			values[k] = strconv.FormatBool(x)
		case float64:
			values[k] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			return dto.CategoryForm{}, errInvalidForm
		}
	}
	return dto.NewCategoryForm(values), nil
}
