package category

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// normalizeName recorta espacios y normaliza a NFC para que la unicidad no dependa de la forma Unicode.
func normalizeName(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// parseFlag: solo el literal "true" es verdadero. Misma regla en create y update.
func parseFlag(raw string) bool {
	return raw == "true"
}

// parseSequence convierte a entero de 32 bits; vacío, no numérico o fuera de rango = 0.
// Los decimales se truncan.
func parseSequence(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// parsePrice: vacío o no numérico = nil (precio nulo), nunca 0.
func parsePrice(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// parseCategoryType valida contra el enumerado; vacío = fallback.
func parseCategoryType(raw string, fallback entity.CategoryType) (entity.CategoryType, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fallback, nil
	}
	t := entity.CategoryType(s)
	if !t.Valid() {
		return "", domain.ErrInvalidCategoryType
	}
	return t, nil
}

// hasAnyFreeText indica si vino al menos uno de freeText0..freeText9.
func hasAnyFreeText(form dto.CategoryForm) bool {
	for i := 0; i < entity.FreeTextSlots; i++ {
		if form.Has(dto.FreeTextField(i)) {
			return true
		}
	}
	return false
}

// buildFreeTexts arma los 10 textos libres; los que faltan quedan vacíos.
func buildFreeTexts(form dto.CategoryForm) [entity.FreeTextSlots]string {
	var out [entity.FreeTextSlots]string
	for i := range out {
		out[i] = form.Get(dto.FreeTextField(i))
	}
	return out
}

// applyRootFields copia los campos de raíz. En update solo los presentes.
func applyRootFields(d *entity.RootDetails, form dto.CategoryForm, create bool) {
	if create || form.Has(dto.FieldSEOKeywords) {
		d.SEOKeywords = form.Get(dto.FieldSEOKeywords)
	}
	if create || form.Has(dto.FieldPostRequestsDeals) {
		d.PostRequestsDeals = parseFlag(form.Get(dto.FieldPostRequestsDeals))
	}
	if create || form.Has(dto.FieldLoyaltyPoints) {
		d.LoyaltyPoints = parseFlag(form.Get(dto.FieldLoyaltyPoints))
	}
	if create || form.Has(dto.FieldLinkAttributesPricing) {
		d.LinkAttributesPricing = parseFlag(form.Get(dto.FieldLinkAttributesPricing))
	}
	if create || hasAnyFreeText(form) {
		d.FreeTexts = buildFreeTexts(form)
	}
}

// applySubcategoryFields copia los campos de subcategoría. En update solo los presentes.
func applySubcategoryFields(d *entity.SubcategoryDetails, form dto.CategoryForm, create bool) {
	if create || form.Has(dto.FieldPrice) {
		d.Price = parsePrice(form.Get(dto.FieldPrice))
	}
	if create || form.Has(dto.FieldTerms) {
		d.Terms = form.Get(dto.FieldTerms)
	}
	if create || form.Has(dto.FieldFreeText) {
		d.FreeText = form.Get(dto.FieldFreeText)
	}
}
