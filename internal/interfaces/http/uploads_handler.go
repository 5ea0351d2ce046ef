package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/infrastructure/storage"
)

// ObjectOpener abre imágenes almacenadas (disco local o MinIO).
type ObjectOpener interface {
	Open(ctx context.Context, key string) (*storage.Object, error)
}

// UploadsHandler sirve las imágenes bajo /uploads/:key.
type UploadsHandler struct {
	store ObjectOpener
}

func NewUploadsHandler(store ObjectOpener) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// Serve entrega el objeto con su content type. Claves desconocidas o inválidas = 404.
func (h *UploadsHandler) Serve(c *fiber.Ctx) error {
	obj, err := h.store.Open(c.UserContext(), c.Params("key"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "File not found"})
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.SendStream(obj.Body, int(obj.Size))
}
