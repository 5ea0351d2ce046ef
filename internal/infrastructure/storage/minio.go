package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/pkg/config"
)

// NewMinioClient crea el cliente S3 compatible.
func NewMinioClient(cfg config.MinioConfig) (*minio.Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente minio: %w", err)
	}
	return mc, nil
}

// EnsureBucket crea el bucket si no existe.
func EnsureBucket(ctx context.Context, mc *minio.Client, bucket string) error {
	exists, err := mc.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("verificar bucket: %w", err)
	}
	if !exists {
		return mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

var _ category.ImageStorage = (*Minio)(nil)

// Minio guarda las imágenes como objetos de un bucket. Se sirven igualmente bajo /uploads/.
type Minio struct {
	mc      *minio.Client
	bucket  string
	maxSize int64
}

func NewMinio(mc *minio.Client, bucket string, maxSize int64) *Minio {
	return &Minio{mc: mc, bucket: bucket, maxSize: maxSize}
}

func (s *Minio) Save(ctx context.Context, file *dto.UploadedFile) (string, error) {
	p, err := prepare(file, s.maxSize)
	if err != nil {
		return "", err
	}
	info, err := s.mc.PutObject(ctx, s.bucket, p.key, bytes.NewReader(p.data), int64(len(p.data)), minio.PutObjectOptions{
		ContentType: p.mime,
	})
	if err != nil {
		return "", fmt.Errorf("subir imagen: %w", err)
	}
	return URLPrefix + info.Key, nil
}

func (s *Minio) Remove(ctx context.Context, url string) error {
	key, err := KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.mc.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}

func (s *Minio) Open(ctx context.Context, key string) (*Object, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	obj, err := s.mc.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("stat imagen: %w", err)
	}
	return &Object{Body: obj, ContentType: st.ContentType, Size: st.Size}, nil
}
