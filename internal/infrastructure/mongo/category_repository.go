package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// categoryDocument forma persistida. parent es null para raíces; los campos del
// rol que no aplica se omiten.
type categoryDocument struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Parent          *string   `bson:"parent"`
	Sequence        int       `bson:"sequence"`
	ImageURL        string    `bson:"imageUrl,omitempty"`
	VisibleToUser   bool      `bson:"visibleToUser"`
	VisibleToVendor bool      `bson:"visibleToVendor"`
	CategoryType    string    `bson:"categoryType"`
	AddToCart       bool      `bson:"addToCart"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`

	// raíz
	SEOKeywords           *string  `bson:"seoKeywords,omitempty"`
	PostRequestsDeals     *bool    `bson:"postRequestsDeals,omitempty"`
	LoyaltyPoints         *bool    `bson:"loyaltyPoints,omitempty"`
	LinkAttributesPricing *bool    `bson:"linkAttributesPricing,omitempty"`
	FreeTexts             []string `bson:"freeTexts,omitempty"`

	// subcategoría
	Price    *primitive.Decimal128 `bson:"price,omitempty"`
	Terms    *string               `bson:"terms,omitempty"`
	FreeText *string               `bson:"freeText,omitempty"`
}

// CategoryRepo implementación de CategoryRepository sobre una colección MongoDB.
type CategoryRepo struct {
	coll *mongo.Collection
}

// NewCategoryRepository construye el adaptador sobre db.collection.
func NewCategoryRepository(db *mongo.Database, collection string) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(collection)}
}

// EnsureIndexes crea el índice único (parent, name) y el de listado.
func (r *CategoryRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parent", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("parent_name_unique"),
		},
		{
			Keys:    bson.D{{Key: "parent", Value: 1}, {Key: "sequence", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("parent_order"),
		},
	})
	if err != nil {
		return fmt.Errorf("crear índices: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	doc, err := toDocument(c)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CategoryRepo) GetByNameAndParent(ctx context.Context, name, parentID string) (*entity.Category, error) {
	return r.findOne(ctx, bson.M{"name": name, "parent": parentFilter(parentID)})
}

func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sequence", Value: 1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	})
	cur, err := r.coll.Find(ctx, bson.M{"parent": parentFilter(parentID)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]*entity.Category, 0, len(docs))
	for i := range docs {
		out = append(out, fromDocument(&docs[i]))
	}
	return out, nil
}

// Update reemplaza el documento completo conservando parent y createdAt.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	doc, err := toDocument(c)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *CategoryRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *CategoryRepo) Info() repository.StoreInfo {
	return repository.StoreInfo{
		Driver:     "mongo",
		Database:   r.coll.Database().Name(),
		Collection: r.coll.Name(),
	}
}

func (r *CategoryRepo) findOne(ctx context.Context, filter bson.M) (*entity.Category, error) {
	var doc categoryDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return fromDocument(&doc), nil
}

// parentFilter: null también casa documentos sin el campo parent.
func parentFilter(parentID string) any {
	if parentID == "" {
		return nil
	}
	return parentID
}

func toDocument(c *entity.Category) (*categoryDocument, error) {
	doc := &categoryDocument{
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
	if !c.IsRoot() {
		p := c.ParentID
		doc.Parent = &p
	}
	switch d := c.Details.(type) {
	case *entity.RootDetails:
		doc.SEOKeywords = &d.SEOKeywords
		doc.PostRequestsDeals = &d.PostRequestsDeals
		doc.LoyaltyPoints = &d.LoyaltyPoints
		doc.LinkAttributesPricing = &d.LinkAttributesPricing
		doc.FreeTexts = append([]string(nil), d.FreeTexts[:]...)
	case *entity.SubcategoryDetails:
		if d.Price != nil {
			p, err := primitive.ParseDecimal128(d.Price.String())
			if err != nil {
				return nil, fmt.Errorf("price %s: %w", d.Price.String(), err)
			}
			doc.Price = &p
		}
		doc.Terms = &d.Terms
		doc.FreeText = &d.FreeText
	}
	return doc, nil
}

func fromDocument(doc *categoryDocument) *entity.Category {
	c := &entity.Category{
		ID:              doc.ID,
		Name:            doc.Name,
		Sequence:        doc.Sequence,
		ImageURL:        doc.ImageURL,
		VisibleToUser:   doc.VisibleToUser,
		VisibleToVendor: doc.VisibleToVendor,
		CategoryType:    entity.CategoryType(doc.CategoryType),
		AddToCart:       doc.AddToCart,
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
	}
	if doc.Parent != nil {
		c.ParentID = *doc.Parent
	}
	if c.IsRoot() {
		d := c.Root()
		d.SEOKeywords = deref(doc.SEOKeywords)
		d.PostRequestsDeals = derefBool(doc.PostRequestsDeals)
		d.LoyaltyPoints = derefBool(doc.LoyaltyPoints)
		d.LinkAttributesPricing = derefBool(doc.LinkAttributesPricing)
		copy(d.FreeTexts[:], doc.FreeTexts)
		return c
	}
	d := c.Subcategory()
	if doc.Price != nil {
		if p, err := decimal.NewFromString(doc.Price.String()); err == nil {
			d.Price = &p
		}
	}
	d.Terms = deref(doc.Terms)
	d.FreeText = deref(doc.FreeText)
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}
