package client

import (
	"context"
	"errors"
	"strconv"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// Errores de validación local del formulario.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrImageRequired = errors.New("image is required")
)

// CategoryForm estado del formulario de alta/edición de una categoría.
// El rol (raíz o subcategoría) lo decide el padre: explícito o el del registro en edición.
// El modo (alta o edición) lo decide si Initial trae id.
type CategoryForm struct {
	ParentID string
	Initial  *dto.CategoryResponse

	Name            string
	Sequence        int
	CategoryType    string
	VisibleToUser   bool
	VisibleToVendor bool
	AddToCart       bool
	Image           *dto.UploadedFile

	// Subcategoría
	Price          string
	Terms          string
	FreeText       string
	EnableFreeText bool

	// Raíz
	SEOKeywords           string
	PostRequestsDeals     bool
	LoyaltyPoints         bool
	LinkAttributesPricing bool
	FreeTexts             [entity.FreeTextSlots]string
}

// NewCategoryForm crea el formulario ya inicializado.
func NewCategoryForm(parentID string, initial *dto.CategoryResponse) *CategoryForm {
	f := &CategoryForm{ParentID: parentID, Initial: initial}
	f.Reset()
	return f
}

// IsEdit indica modo edición.
func (f *CategoryForm) IsEdit() bool {
	return f.Initial != nil && f.Initial.ID != ""
}

// IsSubcategory indica si el formulario corresponde a una subcategoría.
func (f *CategoryForm) IsSubcategory() bool {
	return f.parentID() != ""
}

func (f *CategoryForm) parentID() string {
	if p := dto.NormalizeParentID(f.ParentID); p != "" {
		return p
	}
	if f.Initial != nil {
		return f.Initial.ParentID()
	}
	return ""
}

// Title encabezado según modo y rol.
func (f *CategoryForm) Title() string {
	switch {
	case f.IsEdit():
		return "Edit Category"
	case f.IsSubcategory():
		return "Create Subcategory"
	default:
		return "Create Category"
	}
}

// Reset restaura los valores del registro en edición o los vacíos del rol.
func (f *CategoryForm) Reset() {
	f.clear()
	in := f.Initial
	if in == nil {
		return
	}
	f.Name = in.Name
	f.Sequence = in.Sequence
	if in.CategoryType != "" {
		f.CategoryType = in.CategoryType
	}
	f.VisibleToUser = in.VisibleToUser
	f.VisibleToVendor = in.VisibleToVendor
	f.AddToCart = in.AddToCart

	if sf := in.SubcategoryFields; sf != nil {
		if sf.Price != nil {
			f.Price = strconv.FormatFloat(*sf.Price, 'f', -1, 64)
		}
		f.Terms = sf.Terms
		f.FreeText = sf.FreeText
		f.EnableFreeText = sf.FreeText != ""
	}
	if rf := in.RootFields; rf != nil {
		f.SEOKeywords = rf.SEOKeywords
		f.PostRequestsDeals = rf.PostRequestsDeals
		f.LoyaltyPoints = rf.LoyaltyPoints
		f.LinkAttributesPricing = rf.LinkAttributesPricing
		copy(f.FreeTexts[:], rf.FreeTexts)
	}
}

func (f *CategoryForm) clear() {
	parent, initial := f.ParentID, f.Initial
	*f = CategoryForm{
		ParentID:     parent,
		Initial:      initial,
		CategoryType: string(entity.CategoryTypeProducts),
	}
}

// Validate exige nombre, e imagen salvo en edición.
func (f *CategoryForm) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if !f.IsEdit() && (f.Image == nil || len(f.Image.Data) == 0) {
		return ErrImageRequired
	}
	return nil
}

// Values empaqueta los campos del rol actual tal como los espera el servidor.
func (f *CategoryForm) Values() map[string]string {
	v := map[string]string{
		dto.FieldName:            f.Name,
		dto.FieldSequence:        strconv.Itoa(f.Sequence),
		dto.FieldCategoryType:    f.CategoryType,
		dto.FieldVisibleToUser:   strconv.FormatBool(f.VisibleToUser),
		dto.FieldVisibleToVendor: strconv.FormatBool(f.VisibleToVendor),
		dto.FieldAddToCart:       strconv.FormatBool(f.AddToCart),
	}
	if f.IsSubcategory() {
		v[dto.FieldParentID] = f.parentID()
		v[dto.FieldPrice] = f.Price
		v[dto.FieldTerms] = f.Terms
		if f.EnableFreeText {
			v[dto.FieldFreeText] = f.FreeText
		} else {
			v[dto.FieldFreeText] = ""
		}
		return v
	}
	v[dto.FieldSEOKeywords] = f.SEOKeywords
	v[dto.FieldPostRequestsDeals] = strconv.FormatBool(f.PostRequestsDeals)
	v[dto.FieldLoyaltyPoints] = strconv.FormatBool(f.LoyaltyPoints)
	v[dto.FieldLinkAttributesPricing] = strconv.FormatBool(f.LinkAttributesPricing)
	for i, txt := range f.FreeTexts {
		v[dto.FreeTextField(i)] = txt
	}
	return v
}

// Submit valida y envía el formulario. Crea o actualiza según el modo; si tiene
// éxito deja el formulario en blanco. En error devuelve el mensaje del servidor.
func (f *CategoryForm) Submit(ctx context.Context, c *Client) (*dto.CategoryResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var (
		out *dto.CategoryResponse
		err error
	)
	if f.IsEdit() {
		out, err = c.Update(ctx, f.Initial.ID, f.Values(), f.Image)
	} else {
		out, err = c.Create(ctx, f.Values(), f.Image)
	}
	if err != nil {
		return nil, err
	}

	f.clear()
	return out, nil
}
