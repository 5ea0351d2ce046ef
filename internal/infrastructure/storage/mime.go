package storage

import (
	"net/http"

	"github.com/jhoicas/categories-api/internal/domain"
)

// ExtensionFromMIME devuelve la extensión para los tipos de imagen aceptados (jpeg, png, webp, gif).
func ExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/gif":
		return "gif", nil
	default:
		return "", domain.ErrUnsupportedImage
	}
}

// DetectImage detecta el MIME por contenido (no por extensión ni cabecera del cliente).
func DetectImage(data []byte) (mime, ext string, err error) {
	mime = http.DetectContentType(data[:min(len(data), 512)])
	ext, err = ExtensionFromMIME(mime)
	return mime, ext, err
}
