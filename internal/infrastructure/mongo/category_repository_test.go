package mongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/categories-api/internal/domain/entity"
)

func TestToDocument_RaizSinCamposDeSubcategoria(t *testing.T) {
	c := entity.NewRootCategory("r1", "Electronics", time.Unix(100, 0).UTC())
	c.Root().FreeTexts[3] = "x"

	doc, err := toDocument(c)
	require.NoError(t, err)
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Nil(t, m["parent"], "las raíces se guardan con parent null")
	assert.Contains(t, m, "parent")
	assert.Contains(t, m, "seoKeywords")
	assert.NotContains(t, m, "price")
	assert.NotContains(t, m, "terms")
	assert.Len(t, m["freeTexts"], entity.FreeTextSlots)
}

func TestDocument_SubcategoriaConPrecio(t *testing.T) {
	c := entity.NewSubcategory("s1", "Phones", "r1", time.Unix(100, 0).UTC())
	p := decimal.RequireFromString("199.99")
	c.Subcategory().Price = &p
	c.Subcategory().Terms = "30 days"

	doc, err := toDocument(c)
	require.NoError(t, err)
	require.NotNil(t, doc.Price)
	assert.Equal(t, "199.99", doc.Price.String())
	assert.Nil(t, doc.SEOKeywords)

	back := fromDocument(doc)
	assert.Equal(t, "r1", back.ParentID)
	sd := back.Subcategory()
	require.NotNil(t, sd.Price)
	assert.True(t, p.Equal(*sd.Price))
	assert.Equal(t, "30 days", sd.Terms)
}

func TestParentFilter(t *testing.T) {
	assert.Nil(t, parentFilter(""))
	assert.Equal(t, "r1", parentFilter("r1"))
}
