package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
)

// CategoryHandler maneja las peticiones HTTP de categorías y subcategorías.
type CategoryHandler struct {
	uc            *category.UseCase
	maxImageBytes int64
}

// NewCategoryHandler construye el handler. maxImageBytes <= 0 desactiva el límite.
func NewCategoryHandler(uc *category.UseCase, maxImageBytes int64) *CategoryHandler {
	return &CategoryHandler{uc: uc, maxImageBytes: maxImageBytes}
}

// Create godoc
// @Summary      Crear categoría o subcategoría
// @Description  Sin parentId crea una raíz; con parentId, una subcategoría.
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name          formData  string  true   "Nombre"
// @Param        parentId      formData  string  false  "ID del padre"
// @Param        sequence      formData  int     false  "Orden"
// @Param        categoryType  formData  string  false  "Products | Services | Products & Services"
// @Param        image         formData  file    false  "Imagen"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	form, err := parseCategoryForm(c, h.maxImageBytes)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), form)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar categorías
// @Description  Hijas directas de parentId; sin parentId (o "null") devuelve las raíces.
// @Tags         categories
// @Produce      json
// @Param        parentId  query  string  false  "ID del padre"
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query(dto.FieldParentID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Aplica solo los campos enviados; visibleToUser/visibleToVendor se sobrescriben siempre.
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	form, err := parseCategoryForm(c, h.maxImageBytes)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), form)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Elimina la categoría y todos sus descendientes.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted"})
}

// ExportPDF godoc
// @Summary      Exportar catálogo en PDF
// @Tags         categories
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/export.pdf [get]
func (h *CategoryHandler) ExportPDF(c *fiber.Ctx) error {
	out, err := h.uc.ExportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="categories.pdf"`)
	return c.Send(out)
}
