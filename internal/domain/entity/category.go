package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType clasifica una categoría raíz.
type CategoryType string

const (
	CategoryTypeProducts            CategoryType = "Products"
	CategoryTypeServices            CategoryType = "Services"
	CategoryTypeProductsAndServices CategoryType = "Products & Services"
)

// Valid indica si el tipo pertenece al enumerado.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeProducts, CategoryTypeServices, CategoryTypeProductsAndServices:
		return true
	}
	return false
}

// FreeTextSlots cantidad fija de textos libres de una categoría raíz.
const FreeTextSlots = 10

// Category representa una categoría del catálogo. Es raíz si ParentID está vacío.
// Los campos propios de cada rol viven en Details (RootDetails o SubcategoryDetails).
type Category struct {
	ID              string
	Name            string
	ParentID        string // vacío si es raíz
	Sequence        int
	ImageURL        string
	VisibleToUser   bool
	VisibleToVendor bool
	CategoryType    CategoryType
	AddToCart       bool
	Details         Details
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Details es la variante de campos según el rol de la categoría.
type Details interface {
	isCategoryDetails()
}

// RootDetails campos exclusivos de categorías raíz.
type RootDetails struct {
	SEOKeywords           string
	PostRequestsDeals     bool
	LoyaltyPoints         bool
	LinkAttributesPricing bool
	FreeTexts             [FreeTextSlots]string
}

// SubcategoryDetails campos exclusivos de subcategorías.
type SubcategoryDetails struct {
	Price    *decimal.Decimal // nil = sin precio
	Terms    string
	FreeText string
}

func (*RootDetails) isCategoryDetails()        {}
func (*SubcategoryDetails) isCategoryDetails() {}

// NewRootCategory crea una categoría raíz con sus detalles vacíos.
func NewRootCategory(id, name string, createdAt time.Time) *Category {
	return &Category{
		ID:           id,
		Name:         name,
		CategoryType: CategoryTypeProducts,
		Details:      &RootDetails{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// NewSubcategory crea una subcategoría bajo parentID.
func NewSubcategory(id, name, parentID string, createdAt time.Time) *Category {
	return &Category{
		ID:           id,
		Name:         name,
		ParentID:     parentID,
		CategoryType: CategoryTypeProducts,
		Details:      &SubcategoryDetails{},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool { return c.ParentID == "" }

// Root devuelve los detalles de raíz, creándolos si faltan. Nil para subcategorías.
func (c *Category) Root() *RootDetails {
	if !c.IsRoot() {
		return nil
	}
	d, ok := c.Details.(*RootDetails)
	if !ok {
		d = &RootDetails{}
		c.Details = d
	}
	return d
}

// Subcategory devuelve los detalles de subcategoría, creándolos si faltan. Nil para raíces.
func (c *Category) Subcategory() *SubcategoryDetails {
	if c.IsRoot() {
		return nil
	}
	d, ok := c.Details.(*SubcategoryDetails)
	if !ok {
		d = &SubcategoryDetails{}
		c.Details = d
	}
	return d
}

// EnforceCartRule deja AddToCart en false salvo para el tipo Products.
func (c *Category) EnforceCartRule() {
	if c.CategoryType != CategoryTypeProducts {
		c.AddToCart = false
	}
}

// SortSiblings ordena por Sequence ascendente, CreatedAt descendente y, a igualdad, por ID.
func SortSiblings(list []*Category) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
