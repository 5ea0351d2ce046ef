package category_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
	"github.com/jhoicas/categories-api/internal/infrastructure/memory"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeImages struct {
	mu      sync.Mutex
	saved   []string
	removed []string
}

func (f *fakeImages) Save(_ context.Context, file *dto.UploadedFile) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/uploads/" + file.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImages) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return nil
}

type fakeEvents struct {
	events []category.ChangeEvent
}

func (f *fakeEvents) Publish(_ context.Context, events ...category.ChangeEvent) error {
	f.events = append(f.events, events...)
	return nil
}

// fakeCache guarda listados en memoria y registra cada invalidación.
type fakeCache struct {
	mu          sync.Mutex
	lists       map[string][]dto.CategoryResponse
	invalidated [][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{lists: map[string][]dto.CategoryResponse{}}
}

func (f *fakeCache) GetList(_ context.Context, parentID string) ([]dto.CategoryResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.lists[parentID]
	return items, ok
}

func (f *fakeCache) SetList(_ context.Context, parentID string, items []dto.CategoryResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[parentID] = items
}

func (f *fakeCache) Invalidate(_ context.Context, parentIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, parentIDs)
	for _, id := range parentIDs {
		delete(f.lists, id)
	}
}

// lastInvalidated devuelve las claves de la última invalidación y limpia el registro.
func (f *fakeCache) lastInvalidated(t *testing.T) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.invalidated, "se esperaba una invalidación")
	last := f.invalidated[len(f.invalidated)-1]
	f.invalidated = nil
	return last
}

func (f *fakeCache) cached(parentID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.lists[parentID]
	return ok
}

// failingRepo falla en escrituras para probar la limpieza de imágenes.
type failingRepo struct {
	repository.CategoryRepository
}

func (failingRepo) Create(context.Context, *entity.Category) error {
	return errors.New("disk full")
}

// clock devuelve instantes crecientes de un segundo.
func clock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newUC(t *testing.T) (*category.UseCase, *fakeImages) {
	t.Helper()
	images := &fakeImages{}
	uc := category.NewUseCase(memory.NewCategoryRepository(), images, nil, category.WithClock(clock()))
	return uc, images
}

func form(kv map[string]string) dto.CategoryForm {
	return dto.NewCategoryForm(kv)
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_RaizElectronics(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	got, err := uc.Create(ctx, form(map[string]string{"name": "Electronics", "categoryType": "Products"}))
	require.NoError(t, err)

	assert.Equal(t, "Electronics", got.Name)
	assert.Nil(t, got.Parent)
	require.NotNil(t, got.RootFields)
	assert.Nil(t, got.SubcategoryFields)
	assert.Len(t, got.FreeTexts, 10)
	for _, ft := range got.FreeTexts {
		assert.Equal(t, "", ft)
	}
	assert.Equal(t, "", got.SEOKeywords)

	fetched, err := uc.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, fetched)
}

func TestCreate_SubcategoriaConPrecio(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)

	sub, err := uc.Create(ctx, form(map[string]string{
		"name": "Phones", "parentId": root.ID, "price": "199.99", "seoKeywords": "ignored",
	}))
	require.NoError(t, err)
	require.NotNil(t, sub.Parent)
	assert.Equal(t, root.ID, *sub.Parent)
	assert.Nil(t, sub.RootFields)
	require.NotNil(t, sub.SubcategoryFields)
	require.NotNil(t, sub.Price)
	assert.InDelta(t, 199.99, *sub.Price, 1e-9)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, form(map[string]string{"name": "   "}))
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = uc.Create(ctx, form(map[string]string{"name": "X", "categoryType": "Gadgets"}))
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryType)

	_, err = uc.Create(ctx, form(map[string]string{"name": "X", "parentId": "missing"}))
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Duplicados(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	a, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)
	b, err := uc.Create(ctx, form(map[string]string{"name": "Home"}))
	require.NoError(t, err)

	_, err = uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	_, err = uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": a.ID}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": a.ID}))
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	// mismo nombre bajo otro padre
	_, err = uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": b.ID}))
	assert.NoError(t, err)
}

func TestCreate_AddToCartSoloProducts(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	for _, ct := range []string{"Services", "Products & Services"} {
		got, err := uc.Create(ctx, form(map[string]string{"name": ct, "categoryType": ct, "addToCart": "true"}))
		require.NoError(t, err)
		assert.False(t, got.AddToCart, ct)
	}
	got, err := uc.Create(ctx, form(map[string]string{"name": "P", "categoryType": "Products", "addToCart": "true"}))
	require.NoError(t, err)
	assert.True(t, got.AddToCart)
}

func TestCreate_ImagenYLimpiezaAnteFallo(t *testing.T) {
	uc, images := newUC(t)
	f := form(map[string]string{"name": "Photo"})
	f.Image = &dto.UploadedFile{Filename: "a.png", Data: []byte{1}}

	got, err := uc.Create(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", got.ImageURL)

	failing := category.NewUseCase(failingRepo{memory.NewCategoryRepository()}, images, nil)
	f2 := form(map[string]string{"name": "Other"})
	f2.Image = &dto.UploadedFile{Filename: "b.png", Data: []byte{1}}
	_, err = failing.Create(context.Background(), f2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, images.removed, "/uploads/b.png")
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestList_RaicesOrdenadas(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, form(map[string]string{"name": "First", "sequence": "1"}))
	require.NoError(t, err)
	second, err := uc.Create(ctx, form(map[string]string{"name": "Second", "sequence": "1"}))
	require.NoError(t, err)
	zero, err := uc.Create(ctx, form(map[string]string{"name": "Zero"}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, form(map[string]string{"name": "Child", "parentId": first.ID}))
	require.NoError(t, err)

	for _, p := range []string{"", "null", "undefined"} {
		list, err := uc.List(ctx, p)
		require.NoError(t, err)
		require.Len(t, list, 3, p)
		// sequence asc; a igual sequence, más reciente primero
		assert.Equal(t, []string{zero.ID, second.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
	}

	children, err := uc.List(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Child", children[0].Name)
}

// ─── Update ──────────────────────────────────────────────────────────────────

func TestUpdate_PrecioVacioEsNulo(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)
	sub, err := uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": root.ID, "price": "10"}))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, sub.ID, form(map[string]string{"price": ""}))
	require.NoError(t, err)
	assert.Nil(t, updated.Price)

	fetched, err := uc.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Price)
}

func TestUpdate_RolPersistidoManda(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics", "seoKeywords": "tech"}))
	require.NoError(t, err)
	sub, err := uc.Create(ctx, form(map[string]string{
		"name": "Phones", "parentId": root.ID, "price": "5", "terms": "t", "freeText": "f",
	}))
	require.NoError(t, err)

	// campos de subcategoría enviados a una raíz: ignorados
	r, err := uc.Update(ctx, root.ID, form(map[string]string{
		"price": "99", "terms": "x", "freeText": "y", "parentId": sub.ID,
	}))
	require.NoError(t, err)
	assert.Nil(t, r.SubcategoryFields)
	assert.Nil(t, r.Parent)
	assert.Equal(t, "tech", r.SEOKeywords)

	// campos de raíz enviados a una subcategoría: ignorados
	s, err := uc.Update(ctx, sub.ID, form(map[string]string{
		"seoKeywords": "x", "freeText0": "y", "loyaltyPoints": "true", "parentId": "",
	}))
	require.NoError(t, err)
	assert.Nil(t, s.RootFields)
	require.NotNil(t, s.Parent)
	assert.Equal(t, root.ID, *s.Parent)
	assert.Equal(t, "t", s.Terms)
	assert.Equal(t, "f", s.FreeText)
	require.NotNil(t, s.Price)
	assert.InDelta(t, 5.0, *s.Price, 1e-9)
}

func TestUpdate_VisibilidadSiempreSobrescrita(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, form(map[string]string{"name": "A", "visibleToUser": "true", "visibleToVendor": "true"}))
	require.NoError(t, err)
	assert.True(t, c.VisibleToUser)

	u, err := uc.Update(ctx, c.ID, form(map[string]string{"sequence": "4"}))
	require.NoError(t, err)
	assert.False(t, u.VisibleToUser)
	assert.False(t, u.VisibleToVendor)
	assert.Equal(t, 4, u.Sequence)
}

func TestUpdate_AddToCartSegunTipoResultante(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, form(map[string]string{"name": "A", "addToCart": "true"}))
	require.NoError(t, err)
	require.True(t, c.AddToCart)

	u, err := uc.Update(ctx, c.ID, form(map[string]string{"categoryType": "Services", "addToCart": "true"}))
	require.NoError(t, err)
	assert.False(t, u.AddToCart)
	assert.Equal(t, "Services", u.CategoryType)

	_, err = uc.Update(ctx, c.ID, form(map[string]string{"categoryType": "Nope"}))
	assert.ErrorIs(t, err, domain.ErrInvalidCategoryType)
}

func TestUpdate_NombreYNoEncontrado(t *testing.T) {
	uc, images := newUC(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, "missing", form(nil))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	a, err := uc.Create(ctx, form(map[string]string{"name": "A"}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, form(map[string]string{"name": "B"}))
	require.NoError(t, err)

	_, err = uc.Update(ctx, a.ID, form(map[string]string{"name": "B"}))
	assert.ErrorIs(t, err, domain.ErrCategoryExists)

	f := form(map[string]string{"name": "A2"})
	f.Image = &dto.UploadedFile{Filename: "new.webp", Data: []byte{1}}
	u, err := uc.Update(ctx, a.ID, f)
	require.NoError(t, err)
	assert.Equal(t, "A2", u.Name)
	assert.Equal(t, "/uploads/new.webp", u.ImageURL)
	assert.Equal(t, a.CreatedAt, u.CreatedAt)
	assert.True(t, u.UpdatedAt.After(a.UpdatedAt))
	assert.Empty(t, images.removed)
}

// ─── Delete ──────────────────────────────────────────────────────────────────

func TestDelete_Cascada(t *testing.T) {
	events := &fakeEvents{}
	uc := category.NewUseCase(memory.NewCategoryRepository(), &fakeImages{}, nil,
		category.WithClock(clock()), category.WithEvents(events))
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)
	phones, err := uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": root.ID}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, form(map[string]string{"name": "Android", "parentId": phones.ID}))
	require.NoError(t, err)
	other, err := uc.Create(ctx, form(map[string]string{"name": "Home"}))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, root.ID))

	_, err = uc.GetByID(ctx, root.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(ctx, phones.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := uc.DebugCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
	_, err = uc.GetByID(ctx, other.ID)
	assert.NoError(t, err)

	deleted := 0
	for _, ev := range events.events {
		if ev.Type == category.EventDeleted {
			deleted++
		}
	}
	assert.Equal(t, 3, deleted)

	assert.ErrorIs(t, uc.Delete(ctx, root.ID), domain.ErrNotFound)
}

// ─── Caché de listados ───────────────────────────────────────────────────────

func newCachedUC(t *testing.T) (*category.UseCase, *fakeCache) {
	t.Helper()
	cache := newFakeCache()
	uc := category.NewUseCase(memory.NewCategoryRepository(), &fakeImages{}, nil,
		category.WithClock(clock()), category.WithCache(cache))
	return uc, cache
}

func TestList_SirveDesdeCache(t *testing.T) {
	uc, cache := newCachedUC(t)
	ctx := context.Background()

	cached := []dto.CategoryResponse{{ID: "c1", Name: "Cacheada"}}
	cache.SetList(ctx, "", cached)

	got, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, cached, got)

	// fallo de caché: se lee del almacén y se guarda
	got, err = uc.List(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, cache.cached("r1"))
}

func TestCache_EscriturasInvalidanPadres(t *testing.T) {
	uc, cache := newCachedUC(t)
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, cache.lastInvalidated(t))

	phones, err := uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": root.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, cache.lastInvalidated(t))

	android, err := uc.Create(ctx, form(map[string]string{"name": "Android", "parentId": phones.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{phones.ID}, cache.lastInvalidated(t))

	_, err = uc.Update(ctx, phones.ID, form(map[string]string{"name": "Smartphones"}))
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, cache.lastInvalidated(t))

	_, err = uc.Update(ctx, root.ID, form(map[string]string{"sequence": "2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{""}, cache.lastInvalidated(t))

	// el borrado limpia el padre y los listados de todo el subárbol
	require.NoError(t, uc.Delete(ctx, root.ID))
	assert.ElementsMatch(t, []string{"", root.ID, phones.ID, android.ID}, cache.lastInvalidated(t))
}

func TestCache_ListadoNoQuedaObsoleto(t *testing.T) {
	uc, cache := newCachedUC(t)
	ctx := context.Background()

	roots, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, roots)
	require.True(t, cache.cached(""))

	_, err = uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)

	roots, err = uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Electronics", roots[0].Name)
}

func TestCache_DebugProbeInvalidaRaices(t *testing.T) {
	uc, cache := newCachedUC(t)
	ctx := context.Background()

	_, err := uc.DebugProbe(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, cache.lastInvalidated(t))
}

// ─── Tree / Debug ────────────────────────────────────────────────────────────

func TestTree(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	root, err := uc.Create(ctx, form(map[string]string{"name": "Electronics"}))
	require.NoError(t, err)
	_, err = uc.Create(ctx, form(map[string]string{"name": "Phones", "parentId": root.ID}))
	require.NoError(t, err)

	tree, err := uc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Electronics", tree[0].Category.Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Phones", tree[0].Children[0].Category.Name)
	assert.Empty(t, tree[0].Children[0].Children)
}

func TestDebugProbe(t *testing.T) {
	uc, _ := newUC(t)
	ctx := context.Background()

	probe, err := uc.DebugProbe(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^__probe_\d+$`, probe.Saved.Name)
	assert.Equal(t, "memory", probe.Driver)

	count, err := uc.DebugCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}
