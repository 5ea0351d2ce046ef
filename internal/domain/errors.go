package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("Category not found")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
)

// ValidationError es un error de entrada con mensaje apto para el cliente.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError con el mensaje dado.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// Errores de validación de categorías. Los mensajes forman parte del contrato HTTP.
var (
	ErrNameRequired        = NewValidationError("Name is required")
	ErrCategoryExists      = NewValidationError("Category already exists")
	ErrParentNotFound      = NewValidationError("Parent category not found")
	ErrInvalidCategoryType = NewValidationError("Invalid category type")
	ErrUnsupportedImage    = NewValidationError("Unsupported image type")
	ErrImageTooLarge       = NewValidationError("Image is too large")
)
