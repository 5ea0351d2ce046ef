package category

import (
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// ToResponse convierte la entidad al documento expuesto por la API.
func ToResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	out := &dto.CategoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Sequence:        c.Sequence,
		ImageURL:        c.ImageURL,
		VisibleToUser:   c.VisibleToUser,
		VisibleToVendor: c.VisibleToVendor,
		CategoryType:    string(c.CategoryType),
		AddToCart:       c.AddToCart,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.IsRoot() {
		d := c.Root()
		out.RootFields = &dto.RootFields{
			SEOKeywords:           d.SEOKeywords,
			PostRequestsDeals:     d.PostRequestsDeals,
			LoyaltyPoints:         d.LoyaltyPoints,
			LinkAttributesPricing: d.LinkAttributesPricing,
			FreeTexts:             append([]string(nil), d.FreeTexts[:]...),
		}
		return out
	}

	parent := c.ParentID
	out.Parent = &parent
	d := c.Subcategory()
	sub := &dto.SubcategoryFields{Terms: d.Terms, FreeText: d.FreeText}
	if d.Price != nil {
		p := d.Price.InexactFloat64()
		sub.Price = &p
	}
	out.SubcategoryFields = sub
	return out
}

func toResponses(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToResponse(c))
	}
	return out
}
