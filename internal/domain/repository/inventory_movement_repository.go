package repository

import (
	"time"

	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// MovementFilter es el objeto de filtros para consultar el ledger.
// Los campos vacíos / nil no filtran. Reemplaza la concatenación de SQL
// por combinación de filtros en una sola consulta parametrizada.
type MovementFilter struct {
	ProductID   string
	UserID      string
	Type        string
	ReferenceID string
	From        *time.Time
	To          *time.Time
	Limit       int
}

// InventoryMovementRepository define el puerto del ledger de movimientos.
// El ledger es append-only: no existen operaciones de update ni delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	// Query devuelve movimientos del más reciente al más antiguo.
	Query(filter MovementFilter) ([]*entity.InventoryMovement, error)
	// SumByReference suma las cantidades de los movimientos que referencian
	// una venta; tipo vacío suma todos los tipos. Usado para el cuadre
	// contable de una venta contra el ledger.
	SumByReference(referenceID, movementType string) (int64, error)
}
