package inventory

import (
	"context"

	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El asiento en el ledger y la actualización del
// contador de stock siempre viajan juntos: o se confirman ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
