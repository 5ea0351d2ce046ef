package category

import (
	"context"
	"time"

	"github.com/jhoicas/categories-api/internal/application/dto"
)

// ImageStorage guarda las imágenes subidas y devuelve la URL relativa (/uploads/...).
type ImageStorage interface {
	Save(ctx context.Context, file *dto.UploadedFile) (string, error)
	Remove(ctx context.Context, url string) error
}

// ListCache caché opcional de listados por padre ("" = raíces).
// Los fallos se registran y nunca rompen la petición.
type ListCache interface {
	GetList(ctx context.Context, parentID string) ([]dto.CategoryResponse, bool)
	SetList(ctx context.Context, parentID string, items []dto.CategoryResponse)
	Invalidate(ctx context.Context, parentIDs ...string)
}

// Tipos de evento de cambio.
const (
	EventCreated = "category.created"
	EventUpdated = "category.updated"
	EventDeleted = "category.deleted"
)

// ChangeEvent notificación de cambio de una categoría.
type ChangeEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	CategoryID string    `json:"categoryId"`
	ParentID   string    `json:"parentId,omitempty"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publica eventos de cambio (Kafka en producción).
type EventPublisher interface {
	Publish(ctx context.Context, events ...ChangeEvent) error
}

// CatalogRenderer genera el catálogo imprimible del árbol completo.
type CatalogRenderer interface {
	RenderCatalog(ctx context.Context, tree []dto.CategoryTreeNode, generatedAt time.Time) ([]byte, error)
}
