package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-backend/internal/application/dto"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// ProductUseCase administra el catálogo de productos y categorías.
// No toca el contador de stock más allá del valor inicial al crear: los
// cambios de stock posteriores pasan por el ledger de inventario.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProduct valida y persiste un producto nuevo.
func (uc *ProductUseCase) CreateProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.StockQuantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Barcode:       in.Barcode,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Cost:          in.Cost,
		StockQuantity: in.StockQuantity,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct aplica los campos enviados sobre el producto existente.
// StockQuantity no es actualizable por esta vía.
func (uc *ProductUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = *in.MinStockLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct hace baja lógica del producto.
func (uc *ProductUseCase) DeleteProduct(id string) error {
	return uc.productRepo.Delete(id)
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// GetByBarcode obtiene un producto por código de barras (lectura de escáner).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista el catálogo paginado.
func (uc *ProductUseCase) ListProducts(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(activeOnly, limit, offset)
}

// SearchProducts busca por nombre, descripción o código de barras.
func (uc *ProductUseCase) SearchProducts(term string, limit int) ([]*entity.Product, error) {
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	return uc.productRepo.Search(term, limit)
}

// CreateCategory persiste una categoría nueva.
func (uc *ProductUseCase) CreateCategory(in dto.CreateCategoryRequest) (*entity.Category, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lista las categorías con su conteo de productos.
func (uc *ProductUseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

// DeleteCategory elimina una categoría sin productos asociados.
func (uc *ProductUseCase) DeleteCategory(id string) error {
	return uc.categoryRepo.Delete(id)
}
