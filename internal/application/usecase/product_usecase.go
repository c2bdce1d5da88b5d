package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// Valores que toma un producto cuando el campo está deshabilitado en el formulario de carga.
const (
	DefaultProductName  = "Producto"
	DefaultProductBrand = "Sin marca"
)

// PlaceholderPhoto se usa cuando el producto no trae foto.
const PlaceholderPhoto = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSIxMDAiIGhlaWdodD0iMTAwIj48cmVjdCB3aWR0aD0iMTAwIiBoZWlnaHQ9IjEwMCIgZmlsbD0iI2VlZSIvPjx0ZXh0IHg9IjUwIiB5PSI1NSIgZm9udC1zaXplPSIxMiIgdGV4dC1hbmNob3I9Im1pZGRsZSIgZmlsbD0iIzk5OSI+U2luIGZvdG88L3RleHQ+PC9zdmc+"

// Filtros del listado.
const (
	VisibilityVisible = "visibles"
	VisibilityHidden  = "ocultos"
	VisibilityAll     = "todos"
	StockAll          = "todos"
	StockLow          = "bajo"
	StockOut          = "sin"
)

// ProductUseCase casos de uso del catálogo sobre el coordinador de la sesión.
type ProductUseCase struct {
	factory  *catalog.Factory
	renderer ports.ShortlistRenderer
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewProductUseCase(factory *catalog.Factory, renderer ports.ShortlistRenderer) *ProductUseCase {
	return &ProductUseCase{factory: factory, renderer: renderer, now: time.Now}
}

// Create agrega un producto respetando la configuración de campos del usuario.
// Sin grupo el producto queda con grupo nulo, que se lista bajo el grupo por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, s catalog.Session, role string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	coord := uc.factory.For(s)
	cfg, err := coord.GetConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:           DefaultProductName,
		Brand:          DefaultProductBrand,
		Code:           strconv.FormatInt(uc.now().UnixMilli(), 10),
		Photo:          PlaceholderPhoto,
		Visible:        true,
		WholesalePrice: in.WholesalePrice,
	}
	if cfg.FieldEnabled(entity.FieldName) {
		if p.Name = Capitalize(in.Name); p.Name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
	}
	if cfg.FieldEnabled(entity.FieldBrand) {
		if p.Brand = Capitalize(in.Brand); p.Brand == "" {
			return nil, fmt.Errorf("%w: la marca es obligatoria", domain.ErrInvalidInput)
		}
	}
	if cfg.FieldEnabled(entity.FieldCode) {
		if p.Code = strings.TrimSpace(in.Code); p.Code == "" {
			return nil, fmt.Errorf("%w: el código es obligatorio", domain.ErrInvalidInput)
		}
	}
	if cfg.FieldEnabled(entity.FieldQuantity) && in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if cfg.FieldEnabled(entity.FieldGroup) && strings.TrimSpace(in.Group) != "" {
		p.Group = strings.TrimSpace(in.Group)
	}
	if cfg.FieldEnabled(entity.FieldPhoto) && in.Photo != "" {
		p.Photo = in.Photo
	}
	if !p.WholesalePrice.IsPositive() {
		return nil, fmt.Errorf("%w: el precio mayorista debe ser mayor a 0", domain.ErrInvalidInput)
	}

	saved, err := coord.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	discounts, err := coord.ListDiscounts(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(saved, cfg.MinStockThreshold, entity.CanSeeWholesale(role), discounts)
	return &resp, nil
}

// Update edita los campos presentes en la entrada.
func (uc *ProductUseCase) Update(ctx context.Context, s catalog.Session, role, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Code:           trimmed(in.Code),
		Quantity:       in.Quantity,
		Group:          trimmed(in.Group),
		Photo:          in.Photo,
		Missing:        in.Missing,
		Visible:        in.Visible,
		WholesalePrice: in.WholesalePrice,
	}
	if in.Name != nil {
		name := Capitalize(*in.Name)
		patch.Name = &name
	}
	if in.Brand != nil {
		brand := Capitalize(*in.Brand)
		patch.Brand = &brand
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no hay cambios", domain.ErrInvalidInput)
	}
	if (patch.Name != nil && *patch.Name == "") || (patch.Brand != nil && *patch.Brand == "") || (patch.Code != nil && *patch.Code == "") {
		return nil, fmt.Errorf("%w: nombre, marca y código no pueden quedar vacíos", domain.ErrInvalidInput)
	}
	if patch.WholesalePrice != nil && !patch.WholesalePrice.IsPositive() {
		return nil, fmt.Errorf("%w: el precio mayorista debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return uc.apply(ctx, s, role, id, patch)
}

// AdjustStock suma delta al stock actual (sin bajar de 0) o fija el valor con Set.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, s catalog.Session, role, id string, in dto.StockRequest) (*dto.ProductResponse, error) {
	var qty int
	switch {
	case in.Set != nil:
		if *in.Set < 0 {
			return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		qty = *in.Set
	case in.Delta != nil:
		current, err := uc.find(ctx, s, id)
		if err != nil {
			return nil, err
		}
		qty = current.Quantity + *in.Delta
		if qty < 0 {
			qty = 0
		}
	default:
		return nil, fmt.Errorf("%w: delta o set requerido", domain.ErrInvalidInput)
	}
	return uc.apply(ctx, s, role, id, entity.ProductPatch{Quantity: &qty})
}

// ToggleVisible alterna la visibilidad del producto.
func (uc *ProductUseCase) ToggleVisible(ctx context.Context, s catalog.Session, role, id string) (*dto.ProductResponse, error) {
	current, err := uc.find(ctx, s, id)
	if err != nil {
		return nil, err
	}
	visible := !current.Visible
	return uc.apply(ctx, s, role, id, entity.ProductPatch{Visible: &visible})
}

// ToggleMissing alterna la marca de faltante ("para pedir").
func (uc *ProductUseCase) ToggleMissing(ctx context.Context, s catalog.Session, role, id string) (*dto.ProductResponse, error) {
	current, err := uc.find(ctx, s, id)
	if err != nil {
		return nil, err
	}
	missing := !current.Missing
	return uc.apply(ctx, s, role, id, entity.ProductPatch{Missing: &missing})
}

// ResetMissing desmarca todos los faltantes y devuelve cuántos se desmarcaron.
func (uc *ProductUseCase) ResetMissing(ctx context.Context, s catalog.Session) (int, error) {
	coord := uc.factory.For(s)
	list, err := coord.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	off := false
	count := 0
	for _, p := range list {
		if !p.Missing {
			continue
		}
		if _, err := coord.UpdateProduct(ctx, p.ID, entity.ProductPatch{Missing: &off}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Delete elimina el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, s catalog.Session, id string) error {
	return uc.factory.For(s).DeleteProduct(ctx, id)
}

// List devuelve los productos filtrados, ordenados por marca y nombre.
func (uc *ProductUseCase) List(ctx context.Context, s catalog.Session, role string, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	coord := uc.factory.For(s)
	list, err := coord.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	view, err := uc.view(ctx, coord)
	if err != nil {
		return nil, err
	}
	filtered := FilterProducts(list, f, view.minStock)
	return &dto.ProductListResponse{
		Items: ToProductResponses(filtered, view.minStock, entity.CanSeeWholesale(role), view.discounts),
		Total: len(filtered),
	}, nil
}

// Shortlist devuelve los productos a reponer: marcados como faltantes o con stock en o bajo el mínimo.
func (uc *ProductUseCase) Shortlist(ctx context.Context, s catalog.Session, role string) (*dto.ProductListResponse, error) {
	list, view, err := uc.shortlist(ctx, s)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: ToProductResponses(list, view.minStock, entity.CanSeeWholesale(role), view.discounts),
		Total: len(list),
	}, nil
}

// ShortlistPDF genera el listado de faltantes imprimible. Con precios visibles
// el PDF muestra el precio con el descuento de cada marca.
func (uc *ProductUseCase) ShortlistPDF(ctx context.Context, s catalog.Session, role string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("%w: generador de PDF no configurado", domain.ErrInvalidInput)
	}
	list, view, err := uc.shortlist(ctx, s)
	if err != nil {
		return nil, err
	}
	showPrices := entity.CanSeeWholesale(role)
	if showPrices {
		list = discounted(list, view.discounts)
	}
	return uc.renderer.RenderShortlist(ctx, s.Email, list, view.minStock, showPrices)
}

// productView es lo que la presentación de productos toma de la sesión además de la lista.
type productView struct {
	minStock  int
	discounts entity.BrandDiscounts
}

// view lee configuración y descuentos por el coordinador (remoto primero).
func (uc *ProductUseCase) view(ctx context.Context, coord *catalog.Coordinator) (productView, error) {
	cfg, err := coord.GetConfiguration(ctx)
	if err != nil {
		return productView{}, err
	}
	discounts, err := coord.ListDiscounts(ctx)
	if err != nil {
		return productView{}, err
	}
	return productView{minStock: cfg.MinStockThreshold, discounts: discounts}, nil
}

func (uc *ProductUseCase) shortlist(ctx context.Context, s catalog.Session) ([]*entity.Product, productView, error) {
	coord := uc.factory.For(s)
	list, err := coord.ListProducts(ctx)
	if err != nil {
		return nil, productView{}, err
	}
	view, err := uc.view(ctx, coord)
	if err != nil {
		return nil, productView{}, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range list {
		if p.Missing || p.BelowThreshold(view.minStock) {
			out = append(out, p)
		}
	}
	SortProducts(out)
	return out, view, nil
}

func (uc *ProductUseCase) apply(ctx context.Context, s catalog.Session, role, id string, patch entity.ProductPatch) (*dto.ProductResponse, error) {
	coord := uc.factory.For(s)
	updated, err := coord.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	view, err := uc.view(ctx, coord)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(updated, view.minStock, entity.CanSeeWholesale(role), view.discounts)
	return &resp, nil
}

// find busca el producto con el backend primero; el caché sólo responde sin conexión.
func (uc *ProductUseCase) find(ctx context.Context, s catalog.Session, id string) (*entity.Product, error) {
	return uc.factory.For(s).GetProduct(ctx, id)
}

// discounted devuelve copias de los productos con el precio ya descontado.
func discounted(list []*entity.Product, discounts entity.BrandDiscounts) []*entity.Product {
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		cp := *p
		cp.WholesalePrice, _ = discounts.Apply(p.WholesalePrice, p.Brand)
		out = append(out, &cp)
	}
	return out
}

// FilterProducts aplica texto, grupo, visibilidad y stock, y ordena por marca y nombre.
func FilterProducts(list []*entity.Product, f dto.ProductFilter, minStock int) []*entity.Product {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if text != "" &&
			!strings.Contains(strings.ToLower(p.Name), text) &&
			!strings.Contains(strings.ToLower(p.Brand), text) &&
			!strings.Contains(strings.ToLower(p.Code), text) {
			continue
		}
		if f.Group != "" && f.Group != "todos" && !inGroup(p, f.Group) {
			continue
		}
		switch f.Visibility {
		case VisibilityAll:
		case VisibilityHidden:
			if p.Visible {
				continue
			}
		default:
			if !p.Visible {
				continue
			}
		}
		switch f.Stock {
		case StockLow:
			if p.Quantity <= 0 || p.Quantity > minStock {
				continue
			}
		case StockOut:
			if p.Quantity != 0 {
				continue
			}
		}
		out = append(out, p)
	}
	SortProducts(out)
	return out
}

// inGroup trata el grupo nulo como el grupo por defecto.
func inGroup(p *entity.Product, group string) bool {
	if group == entity.DefaultGroup {
		return p.Group == "" || p.Group == entity.DefaultGroup
	}
	return p.Group == group
}

// SortProducts ordena por marca y luego nombre (orden de bytes, igual que el backend).
func SortProducts(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Brand != list[j].Brand {
			return list[i].Brand < list[j].Brand
		}
		return list[i].Name < list[j].Name
	})
}

// Capitalize pone en mayúscula la primera letra de cada palabra y el resto en minúscula.
func Capitalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.Spanish).String(s)
}

// ToProductResponse convierte el producto; sin permiso los precios no se incluyen.
func ToProductResponse(p *entity.Product, minStock int, showPrice bool, discounts entity.BrandDiscounts) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Code:     p.Code,
		Quantity: p.Quantity,
		Group:    p.Group,
		Photo:    p.Photo,
		Missing:  p.Missing,
		Visible:  p.Visible,
		LowStock: p.BelowThreshold(minStock),
		Local:    p.IsLocal(),
	}
	if showPrice {
		price := p.WholesalePrice
		resp.WholesalePrice = &price
		if final, pct := discounts.Apply(price, p.Brand); pct > 0 {
			resp.Discount = pct
			resp.DiscountedPrice = &final
		}
	}
	return resp
}

// ToProductResponses convierte una lista.
func ToProductResponses(list []*entity.Product, minStock int, showPrice bool, discounts entity.BrandDiscounts) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p, minStock, showPrice, discounts))
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
