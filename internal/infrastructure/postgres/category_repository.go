package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, parent_id, sequence, image_url, visible_to_user, visible_to_vendor,
	category_type, add_to_cart, seo_keywords, post_requests_deals, loyalty_points,
	link_attributes_pricing, free_texts, price, terms, free_text, created_at, updated_at`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
// Una sola tabla; las columnas del rol que no aplica quedan en NULL.
type CategoryRepo struct {
	q      Querier
	dbName string
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier, dbName string) *CategoryRepo {
	return &CategoryRepo{q: q, dbName: dbName}
}

// Create inserta la categoría. La unicidad (parent, name) la garantiza el índice.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query, categoryArgs(c)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrParentNotFound
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. nil, nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByNameAndParent busca por nombre entre las hijas de parentID ("" = raíces).
func (r *CategoryRepo) GetByNameAndParent(ctx context.Context, name, parentID string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE COALESCE(parent_id, '') = $1 AND name = $2`
	c, err := scanCategory(r.q.QueryRow(ctx, query, parentID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// ListByParent lista las hijas directas ordenadas por sequence y createdAt desc.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE COALESCE(parent_id, '') = $1
		ORDER BY sequence ASC, created_at DESC, id ASC`
	rows, err := r.q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Update reescribe los campos mutables. parent_id y created_at no cambian.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `UPDATE categories SET
		name = $2, sequence = $3, image_url = $4, visible_to_user = $5, visible_to_vendor = $6,
		category_type = $7, add_to_cart = $8, seo_keywords = $9, post_requests_deals = $10,
		loyalty_points = $11, link_attributes_pricing = $12, free_texts = $13, price = $14,
		terms = $15, free_text = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, updateArgs(c)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina los ids dados. Las hijas no listadas caen por ON DELETE CASCADE.
func (r *CategoryRepo) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CategoryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *CategoryRepo) Info() repository.StoreInfo {
	return repository.StoreInfo{Driver: "postgres", Database: r.dbName, Collection: "categories"}
}

// categoryArgs devuelve los parámetros en el orden de categoryColumns.
func categoryArgs(c *entity.Category) []any {
	var parent *string
	if !c.IsRoot() {
		p := c.ParentID
		parent = &p
	}
	var (
		seo                   *string
		deals, loyalty, links *bool
		freeTexts             []string
		price                 *decimal.Decimal
		terms, freeText       *string
	)
	switch d := c.Details.(type) {
	case *entity.RootDetails:
		seo = &d.SEOKeywords
		deals, loyalty, links = &d.PostRequestsDeals, &d.LoyaltyPoints, &d.LinkAttributesPricing
		freeTexts = d.FreeTexts[:]
	case *entity.SubcategoryDetails:
		price = d.Price
		terms, freeText = &d.Terms, &d.FreeText
	}
	return []any{
		c.ID, c.Name, parent, c.Sequence, c.ImageURL, c.VisibleToUser, c.VisibleToVendor,
		string(c.CategoryType), c.AddToCart, seo, deals, loyalty, links, freeTexts,
		price, terms, freeText, c.CreatedAt, c.UpdatedAt,
	}
}

// updateArgs devuelve $1..$17 de Update: el orden de categoryArgs sin parent_id ni created_at.
func updateArgs(c *entity.Category) []any {
	args := categoryArgs(c)
	out := make([]any, 0, len(args)-2)
	out = append(out, args[0:2]...)
	out = append(out, args[3:17]...)
	return append(out, args[18])
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c                     entity.Category
		parent                *string
		categoryType          string
		seo                   *string
		deals, loyalty, links *bool
		freeTexts             []string
		price                 decimal.NullDecimal
		terms, freeText       *string
	)
	err := row.Scan(
		&c.ID, &c.Name, &parent, &c.Sequence, &c.ImageURL, &c.VisibleToUser, &c.VisibleToVendor,
		&categoryType, &c.AddToCart, &seo, &deals, &loyalty, &links, &freeTexts,
		&price, &terms, &freeText, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CategoryType = entity.CategoryType(categoryType)
	if parent != nil {
		c.ParentID = *parent
	}

	if c.IsRoot() {
		d := c.Root()
		d.SEOKeywords = deref(seo)
		d.PostRequestsDeals = derefBool(deals)
		d.LoyaltyPoints = derefBool(loyalty)
		d.LinkAttributesPricing = derefBool(links)
		copy(d.FreeTexts[:], freeTexts)
		return &c, nil
	}
	d := c.Subcategory()
	if price.Valid {
		p := price.Decimal
		d.Price = &p
	}
	d.Terms = deref(terms)
	d.FreeText = deref(freeText)
	return &c, nil
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
