package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/categories-api/internal/domain/repository"
)

// Nombres de campo del formulario multipart de categorías.
const (
	FieldName                  = "name"
	FieldParentID              = "parentId"
	FieldSequence              = "sequence"
	FieldPrice                 = "price"
	FieldTerms                 = "terms"
	FieldVisibleToUser         = "visibleToUser"
	FieldVisibleToVendor       = "visibleToVendor"
	FieldFreeText              = "freeText"
	FieldSEOKeywords           = "seoKeywords"
	FieldCategoryType          = "categoryType"
	FieldAddToCart             = "addToCart"
	FieldPostRequestsDeals     = "postRequestsDeals"
	FieldLoyaltyPoints         = "loyaltyPoints"
	FieldLinkAttributesPricing = "linkAttributesPricing"
	FieldImage                 = "image"
)

// FreeTextField devuelve el nombre del campo indexado freeText0..freeText9.
func FreeTextField(i int) string {
	return fmt.Sprintf("%s%d", FieldFreeText, i)
}

// CategoryForm cuerpo de creación/actualización tal como llega del formulario.
// Conserva la presencia de cada campo: en update solo se aplican los presentes.
type CategoryForm struct {
	Values map[string]string
	Image  *UploadedFile
}

// NewCategoryForm construye el formulario a partir de pares clave/valor.
func NewCategoryForm(values map[string]string) CategoryForm {
	if values == nil {
		values = map[string]string{}
	}
	return CategoryForm{Values: values}
}

// Has indica si el campo vino en la petición (aunque sea vacío).
func (f CategoryForm) Has(key string) bool {
	_, ok := f.Values[key]
	return ok
}

// Get devuelve el valor del campo o "" si no vino.
func (f CategoryForm) Get(key string) string {
	return f.Values[key]
}

// ParentID devuelve el parentId normalizado ("" para raíz).
func (f CategoryForm) ParentID() string {
	return NormalizeParentID(f.Get(FieldParentID))
}

// NormalizeParentID trata "", "null" y "undefined" como ausencia de padre.
func NormalizeParentID(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "null" || v == "undefined" {
		return ""
	}
	return v
}

// UploadedFile imagen recibida en el multipart.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// CategoryResponse documento de categoría tal como se expone en la API.
// Solo uno de RootFields / SubcategoryFields está presente según el rol.
type CategoryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Parent          *string   `json:"parent"`
	Sequence        int       `json:"sequence"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	VisibleToUser   bool      `json:"visibleToUser"`
	VisibleToVendor bool      `json:"visibleToVendor"`
	CategoryType    string    `json:"categoryType"`
	AddToCart       bool      `json:"addToCart"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	*RootFields
	*SubcategoryFields
}

// RootFields campos exclusivos de categorías raíz.
type RootFields struct {
	SEOKeywords           string   `json:"seoKeywords"`
	PostRequestsDeals     bool     `json:"postRequestsDeals"`
	LoyaltyPoints         bool     `json:"loyaltyPoints"`
	LinkAttributesPricing bool     `json:"linkAttributesPricing"`
	FreeTexts             []string `json:"freeTexts"`
}

// SubcategoryFields campos exclusivos de subcategorías. Price nulo = sin precio.
type SubcategoryFields struct {
	Price    *float64 `json:"price"`
	Terms    string   `json:"terms"`
	FreeText string   `json:"freeText"`
}

// IsRoot indica si la respuesta corresponde a una categoría raíz.
func (r *CategoryResponse) IsRoot() bool {
	return r.Parent == nil || *r.Parent == ""
}

// ParentID devuelve el id del padre o "".
func (r *CategoryResponse) ParentID() string {
	if r.Parent == nil {
		return ""
	}
	return *r.Parent
}

// CategoryTreeNode nodo del árbol completo (exportación).
type CategoryTreeNode struct {
	Category CategoryResponse   `json:"category"`
	Children []CategoryTreeNode `json:"children"`
}

// DebugCountResponse salida de GET /_debug/count.
type DebugCountResponse struct {
	Count int64 `json:"count"`
	repository.StoreInfo
}

// ProbeRef referencia al documento de prueba insertado.
type ProbeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DebugProbeResponse salida de POST /_debug/probe.
type DebugProbeResponse struct {
	Saved ProbeRef `json:"saved"`
	repository.StoreInfo
}
