package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categories-api/internal/application/category"
)

// DebugHandler endpoints de diagnóstico del almacén.
type DebugHandler struct {
	uc *category.UseCase
}

func NewDebugHandler(uc *category.UseCase) *DebugHandler {
	return &DebugHandler{uc: uc}
}

// Count godoc
// @Summary      Contar documentos
// @Tags         debug
// @Produce      json
// @Success      200  {object}  dto.DebugCountResponse
// @Router       /api/categories/_debug/count [get]
func (h *DebugHandler) Count(c *fiber.Ctx) error {
	out, err := h.uc.DebugCount(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Probe godoc
// @Summary      Insertar documento de prueba
// @Tags         debug
// @Produce      json
// @Success      200  {object}  dto.DebugProbeResponse
// @Router       /api/categories/_debug/probe [post]
func (h *DebugHandler) Probe(c *fiber.Ctx) error {
	out, err := h.uc.DebugProbe(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
