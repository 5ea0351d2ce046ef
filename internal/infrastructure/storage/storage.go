package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
)

// URLPrefix prefijo público de las imágenes subidas.
const URLPrefix = "/uploads/"

// ErrObjectNotFound el objeto pedido no existe en el almacenamiento.
var ErrObjectNotFound = errors.New("object not found")

// Object contenido abierto para servir por HTTP. El llamador cierra Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// prepared imagen validada lista para escribir.
type prepared struct {
	key  string
	mime string
	data []byte
}

// prepare valida tamaño y tipo, y genera una clave única <unix-ms>-<uuid>.<ext>.
func prepare(file *dto.UploadedFile, maxSize int64) (*prepared, error) {
	if maxSize > 0 && int64(len(file.Data)) > maxSize {
		return nil, domain.ErrImageTooLarge
	}
	mime, ext, err := DetectImage(file.Data)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	return &prepared{key: key, mime: mime, data: file.Data}, nil
}

// KeyFromURL extrae la clave de /uploads/<key>. Rechaza rutas con separadores.
func KeyFromURL(url string) (string, error) {
	key := strings.TrimPrefix(url, URLPrefix)
	return key, ValidateKey(key)
}

// ValidateKey rechaza claves vacías o que intenten salir del directorio.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("clave inválida %q: %w", key, ErrObjectNotFound)
	}
	return nil
}
