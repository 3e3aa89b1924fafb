package stock

import (
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// StockUseCase expone las consultas del contador de stock. Las mutaciones del
// contador no pasan por aquí: siempre van pareadas con un asiento del ledger
// dentro de una transacción (ventas, cancelaciones, ajustes).
type StockUseCase struct {
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{productRepo: productRepo}
}

// CurrentQuantity devuelve el stock actual del producto.
func (uc *StockUseCase) CurrentQuantity(productID string) (int64, error) {
	return uc.productRepo.CurrentQuantity(productID)
}

// ListBelowMinimum devuelve los productos activos con stock en o bajo su nivel
// mínimo, ordenados por nombre.
func (uc *StockUseCase) ListBelowMinimum() ([]*entity.Product, error) {
	return uc.productRepo.ListBelowMinimum()
}
