package repository

import (
	"context"

	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// StoreInfo identifica el almacén detrás del repositorio (diagnóstico).
type StoreInfo struct {
	Driver     string `json:"driver"`
	Database   string `json:"dbName"`
	Collection string `json:"collection"`
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// parentID vacío significa "categorías raíz".
type CategoryRepository interface {
	// Create persiste la categoría. Devuelve domain.ErrDuplicate si (name, parent) ya existe.
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByNameAndParent(ctx context.Context, name, parentID string) (*entity.Category, error)
	// ListByParent ordena por sequence ascendente y createdAt descendente.
	ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error)
	// Update devuelve domain.ErrNotFound o domain.ErrDuplicate.
	Update(ctx context.Context, category *entity.Category) error
	// Delete elimina los ids indicados y devuelve cuántos existían.
	Delete(ctx context.Context, ids ...string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Info() StoreInfo
}
