package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
)

var _ category.ImageStorage = (*Local)(nil)

// Local guarda las imágenes en un directorio del disco.
type Local struct {
	dir     string
	maxSize int64
}

// NewLocal crea el directorio si no existe.
func NewLocal(dir string, maxSize int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &Local{dir: dir, maxSize: maxSize}, nil
}

func (s *Local) Save(_ context.Context, file *dto.UploadedFile) (string, error) {
	p, err := prepare(file, s.maxSize)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, p.key), p.data, 0o644); err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	return URLPrefix + p.key, nil
}

func (s *Local) Remove(_ context.Context, url string) error {
	key, err := KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}

func (s *Local) Open(_ context.Context, key string) (*Object, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("abrir imagen: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat imagen: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Object{Body: f, ContentType: ct, Size: st.Size()}, nil
}
