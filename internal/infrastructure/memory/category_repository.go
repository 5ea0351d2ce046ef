package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
)

// CategoryRepository almacén en memoria. Útil en desarrollo y tests.
type CategoryRepository struct {
	mu    sync.RWMutex
	items map[string]*entity.Category
}

// NewCategoryRepository crea un repositorio vacío.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{items: make(map[string]*entity.Category)}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.findLocked(c.Name, c.ParentID) != nil {
		return domain.ErrDuplicate
	}
	r.items[c.ID] = clone(c)
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

func (r *CategoryRepository) GetByNameAndParent(_ context.Context, name, parentID string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.findLocked(name, parentID)), nil
}

func (r *CategoryRepository) ListByParent(_ context.Context, parentID string) ([]*entity.Category, error) {
	r.mu.RLock()
	out := make([]*entity.Category, 0)
	for _, c := range r.items {
		if c.ParentID == parentID {
			out = append(out, clone(c))
		}
	}
	r.mu.RUnlock()
	entity.SortSiblings(out)
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if other := r.findLocked(c.Name, c.ParentID); other != nil && other.ID != c.ID {
		return domain.ErrDuplicate
	}
	r.items[c.ID] = clone(c)
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, ids ...string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *CategoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *CategoryRepository) Info() repository.StoreInfo {
	return repository.StoreInfo{Driver: "memory", Database: "memory", Collection: "categories"}
}

func (r *CategoryRepository) findLocked(name, parentID string) *entity.Category {
	for _, c := range r.items {
		if c.Name == name && c.ParentID == parentID {
			return c
		}
	}
	return nil
}

// clone copia profunda para que los llamadores no muten el estado interno.
func clone(c *entity.Category) *entity.Category {
	if c == nil {
		return nil
	}
	cp := *c
	switch d := c.Details.(type) {
	case *entity.RootDetails:
		rd := *d
		cp.Details = &rd
	case *entity.SubcategoryDetails:
		sd := *d
		if d.Price != nil {
			p := decimal.NewFromBigInt(d.Price.Coefficient(), d.Price.Exponent())
			sd.Price = &p
		}
		cp.Details = &sd
	}
	return &cp
}
