package repository

import "github.com/jhoicas/pos-backend/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las operaciones de stock (contador) viven aquí porque el contador es una
// columna de products, pero solo los casos de uso del ledger las invocan.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Delete es baja lógica: marca is_active = false.
	Delete(id string) error
	List(activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Search(term string, limit int) ([]*entity.Product, error)
	// ListBelowMinimum devuelve productos activos con stock en o bajo su
	// mínimo, ordenados por nombre.
	ListBelowMinimum() ([]*entity.Product, error)

	// ApplyStockDelta suma delta (positivo o negativo) al contador de stock y
	// actualiza updated_at. Devuelve domain.ErrNotFound si el producto no existe.
	ApplyStockDelta(productID string, delta int64) error
	// CurrentQuantity lee el contador de stock.
	CurrentQuantity(productID string) (int64, error)
	// StockForUpdate lee el contador bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	StockForUpdate(productID string) (int64, error)
}

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	// Delete falla con domain.ErrConflict si la categoría tiene productos.
	Delete(id string) error
}
