package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
	"github.com/jhoicas/categories-api/pkg/logger"
)

// maxTreeDepth corta recorridos ante datos corruptos (ciclos de parent).
const maxTreeDepth = 32

// UseCase casos de uso de categorías y subcategorías.
type UseCase struct {
	repo   repository.CategoryRepository
	images ImageStorage
	cache  ListCache
	events EventPublisher
	pdf    CatalogRenderer
	log    *logger.Logger
	now    func() time.Time
	newID  func() string
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*UseCase)

// WithCache activa la caché de listados.
func WithCache(c ListCache) Option { return func(uc *UseCase) { uc.cache = c } }

// WithEvents activa la publicación de eventos de cambio.
func WithEvents(p EventPublisher) Option { return func(uc *UseCase) { uc.events = p } }

// WithCatalogRenderer habilita la exportación a PDF.
func WithCatalogRenderer(r CatalogRenderer) Option { return func(uc *UseCase) { uc.pdf = r } }

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option { return func(uc *UseCase) { uc.now = now } }

// NewUseCase construye el caso de uso. images puede ser nil si no se aceptan imágenes.
func NewUseCase(repo repository.CategoryRepository, images ImageStorage, log *logger.Logger, opts ...Option) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &UseCase{
		repo:   repo,
		images: images,
		log:    log.Component("category"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Create crea una raíz (sin parentId) o una subcategoría. El rol lo decide parentId.
func (uc *UseCase) Create(ctx context.Context, form dto.CategoryForm) (*dto.CategoryResponse, error) {
	name := normalizeName(form.Get(dto.FieldName))
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	categoryType, err := parseCategoryType(form.Get(dto.FieldCategoryType), entity.CategoryTypeProducts)
	if err != nil {
		return nil, err
	}

	parentID := form.ParentID()
	if parentID != "" {
		parent, err := uc.repo.GetByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("buscar padre: %w", err)
		}
		if parent == nil {
			return nil, domain.ErrParentNotFound
		}
	}

	existing, err := uc.repo.GetByNameAndParent(ctx, name, parentID)
	if err != nil {
		return nil, fmt.Errorf("verificar duplicado: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrCategoryExists
	}

	now := uc.now().UTC()
	var c *entity.Category
	if parentID == "" {
		c = entity.NewRootCategory(uc.newID(), name, now)
		applyRootFields(c.Root(), form, true)
	} else {
		c = entity.NewSubcategory(uc.newID(), name, parentID, now)
		applySubcategoryFields(c.Subcategory(), form, true)
	}
	c.Sequence = parseSequence(form.Get(dto.FieldSequence))
	c.VisibleToUser = parseFlag(form.Get(dto.FieldVisibleToUser))
	c.VisibleToVendor = parseFlag(form.Get(dto.FieldVisibleToVendor))
	c.CategoryType = categoryType
	c.AddToCart = parseFlag(form.Get(dto.FieldAddToCart))
	c.EnforceCartRule()

	newImage, err := uc.saveImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}
	c.ImageURL = newImage

	if err := uc.repo.Create(ctx, c); err != nil {
		uc.discardImage(ctx, newImage)
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrCategoryExists
		}
		return nil, fmt.Errorf("guardar categoría: %w", err)
	}

	uc.invalidate(ctx, parentID)
	uc.publish(ctx, EventCreated, c)
	uc.log.Info().Str("id", c.ID).Str("name", c.Name).Str("parent", parentID).Msg("categoría creada")
	return ToResponse(c), nil
}

// List devuelve las hijas directas de parentID (raíces si está vacío),
// ordenadas por sequence ascendente y createdAt descendente.
func (uc *UseCase) List(ctx context.Context, parentID string) ([]dto.CategoryResponse, error) {
	parentID = dto.NormalizeParentID(parentID)
	if uc.cache != nil {
		if items, ok := uc.cache.GetList(ctx, parentID); ok {
			return items, nil
		}
	}
	list, err := uc.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	out := toResponses(list)
	if uc.cache != nil {
		uc.cache.SetList(ctx, parentID, out)
	}
	return out, nil
}

// GetByID devuelve la categoría o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener categoría: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(c), nil
}

// Update aplica solo los campos presentes. visibleToUser/visibleToVendor se
// sobrescriben siempre (ausente = false). El rol se toma del documento persistido.
func (uc *UseCase) Update(ctx context.Context, id string, form dto.CategoryForm) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener categoría: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if form.Has(dto.FieldName) {
		name := normalizeName(form.Get(dto.FieldName))
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if name != c.Name {
			existing, err := uc.repo.GetByNameAndParent(ctx, name, c.ParentID)
			if err != nil {
				return nil, fmt.Errorf("verificar duplicado: %w", err)
			}
			if existing != nil && existing.ID != c.ID {
				return nil, domain.ErrCategoryExists
			}
		}
		c.Name = name
	}
	if form.Has(dto.FieldCategoryType) {
		t, err := parseCategoryType(form.Get(dto.FieldCategoryType), c.CategoryType)
		if err != nil {
			return nil, err
		}
		c.CategoryType = t
	}
	if form.Has(dto.FieldSequence) {
		c.Sequence = parseSequence(form.Get(dto.FieldSequence))
	}
	c.VisibleToUser = parseFlag(form.Get(dto.FieldVisibleToUser))
	c.VisibleToVendor = parseFlag(form.Get(dto.FieldVisibleToVendor))
	if form.Has(dto.FieldAddToCart) {
		c.AddToCart = parseFlag(form.Get(dto.FieldAddToCart))
	}
	c.EnforceCartRule()

	if c.IsRoot() {
		applyRootFields(c.Root(), form, false)
	} else {
		applySubcategoryFields(c.Subcategory(), form, false)
	}

	oldImage := c.ImageURL
	newImage, err := uc.saveImage(ctx, form.Image)
	if err != nil {
		return nil, err
	}
	if newImage != "" {
		c.ImageURL = newImage
	}
	c.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, c); err != nil {
		uc.discardImage(ctx, newImage)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.ErrCategoryExists
		}
		return nil, fmt.Errorf("actualizar categoría: %w", err)
	}
	if newImage != "" && oldImage != "" && oldImage != newImage {
		uc.discardImage(ctx, oldImage)
	}

	uc.invalidate(ctx, c.ParentID)
	uc.publish(ctx, EventUpdated, c)
	uc.log.Info().Str("id", c.ID).Msg("categoría actualizada")
	return ToResponse(c), nil
}

// Delete elimina la categoría y todos sus descendientes.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("obtener categoría: %w", err)
	}
	if c == nil {
		return domain.ErrNotFound
	}

	subtree, err := uc.collectSubtree(ctx, c)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(subtree))
	for _, n := range subtree {
		ids = append(ids, n.ID)
	}
	deleted, err := uc.repo.Delete(ctx, ids...)
	if err != nil {
		return fmt.Errorf("eliminar categoría: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}

	parents := []string{c.ParentID}
	for _, n := range subtree {
		parents = append(parents, n.ID)
		uc.discardImage(ctx, n.ImageURL)
		uc.publish(ctx, EventDeleted, n)
	}
	uc.invalidate(ctx, parents...)
	uc.log.Info().Str("id", c.ID).Int64("deleted", deleted).Msg("categoría eliminada")
	return nil
}

// collectSubtree recorre en anchura los descendientes de root (incluido).
func (uc *UseCase) collectSubtree(ctx context.Context, root *entity.Category) ([]*entity.Category, error) {
	out := []*entity.Category{root}
	seen := map[string]bool{root.ID: true}
	level := []*entity.Category{root}
	for depth := 0; len(level) > 0 && depth < maxTreeDepth; depth++ {
		var next []*entity.Category
		for _, p := range level {
			children, err := uc.repo.ListByParent(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("listar descendientes: %w", err)
			}
			for _, ch := range children {
				if seen[ch.ID] {
					continue
				}
				seen[ch.ID] = true
				out = append(out, ch)
				next = append(next, ch)
			}
		}
		level = next
	}
	return out, nil
}

// Tree devuelve el árbol completo a partir de las raíces.
func (uc *UseCase) Tree(ctx context.Context) ([]dto.CategoryTreeNode, error) {
	return uc.buildTree(ctx, "", 0, map[string]bool{})
}

func (uc *UseCase) buildTree(ctx context.Context, parentID string, depth int, seen map[string]bool) ([]dto.CategoryTreeNode, error) {
	if depth >= maxTreeDepth {
		return nil, nil
	}
	list, err := uc.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	nodes := make([]dto.CategoryTreeNode, 0, len(list))
	for _, c := range list {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		children, err := uc.buildTree(ctx, c.ID, depth+1, seen)
		if err != nil {
			return nil, err
		}
		if children == nil {
			children = []dto.CategoryTreeNode{}
		}
		nodes = append(nodes, dto.CategoryTreeNode{Category: *ToResponse(c), Children: children})
	}
	return nodes, nil
}

// ExportPDF genera el catálogo completo en PDF.
func (uc *UseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("exportación PDF no configurada")
	}
	tree, err := uc.Tree(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.RenderCatalog(ctx, tree, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar catálogo: %w", err)
	}
	return out, nil
}

// DebugCount cuenta los documentos del almacén.
func (uc *UseCase) DebugCount(ctx context.Context) (*dto.DebugCountResponse, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar categorías: %w", err)
	}
	return &dto.DebugCountResponse{Count: n, StoreInfo: uc.repo.Info()}, nil
}

// DebugProbe inserta una categoría raíz de prueba con nombre único.
func (uc *UseCase) DebugProbe(ctx context.Context) (*dto.DebugProbeResponse, error) {
	now := uc.now().UTC()
	c := entity.NewRootCategory(uc.newID(), fmt.Sprintf("__probe_%d", now.UnixMilli()), now)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("insertar sonda: %w", err)
	}
	uc.invalidate(ctx, "")
	return &dto.DebugProbeResponse{
		Saved:     dto.ProbeRef{ID: c.ID, Name: c.Name},
		StoreInfo: uc.repo.Info(),
	}, nil
}

func (uc *UseCase) saveImage(ctx context.Context, file *dto.UploadedFile) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", nil
	}
	if uc.images == nil {
		return "", domain.ErrUnsupportedImage
	}
	url, err := uc.images.Save(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return url, nil
}

// discardImage borra una imagen sin propagar errores.
func (uc *UseCase) discardImage(ctx context.Context, url string) {
	if url == "" || uc.images == nil {
		return
	}
	if err := uc.images.Remove(ctx, url); err != nil {
		uc.log.Warn().Err(err).Str("image", url).Msg("no se pudo eliminar la imagen")
	}
}

func (uc *UseCase) invalidate(ctx context.Context, parentIDs ...string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, parentIDs...)
	}
}

func (uc *UseCase) publish(ctx context.Context, eventType string, c *entity.Category) {
	if uc.events == nil {
		return
	}
	ev := ChangeEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		CategoryID: c.ID,
		ParentID:   c.ParentID,
		Name:       c.Name,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("id", c.ID).Str("type", eventType).Msg("no se pudo publicar el evento")
	}
}
