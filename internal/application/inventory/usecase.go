package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// MovementUseCase opera el ledger de movimientos de inventario: registra
// asientos, ajusta stock a cantidades absolutas y consulta el historial.
// El ledger es append-only; el contador stock_quantity del producto se deriva
// de él y ambos se escriben dentro de la misma transacción, asiento primero.
type MovementUseCase struct {
	txRunner    TxRunner
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo}
}

// MovementInput entrada para RegisterMovement.
type MovementInput struct {
	ProductID   string
	UserID      string
	Type        string
	Quantity    int64 // con signo: positivo entra, negativo sale
	ReferenceID string
	Notes       string
}

// RegisterMovement registra un movimiento y aplica el delta al contador de
// stock, atómicamente. Devuelve el ID del movimiento creado.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (string, error) {
	if input.ProductID == "" || input.UserID == "" {
		return "", domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) || input.Quantity == 0 {
		return "", domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		UserID:      input.UserID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		ReferenceID: input.ReferenceID,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Asiento primero, contador después: ante un fallo no queda nada visible.
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.ApplyStockDelta(input.ProductID, input.Quantity)
	})
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// AdjustTo lleva el stock del producto a una cantidad absoluta registrando un
// movimiento `adjustment` por la diferencia. Si la diferencia es cero no
// escribe nada y devuelve adjusted = false (idempotente).
func (uc *MovementUseCase) AdjustTo(ctx context.Context, productID, userID string, newQuantity int64, reason string) (movementID string, adjusted bool, err error) {
	if productID == "" || userID == "" {
		return "", false, domain.ErrInvalidInput
	}
	mov := &entity.InventoryMovement{ID: uuid.New().String()}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		current, err := productRepo.StockForUpdate(productID)
		if err != nil {
			return err
		}
		delta := newQuantity - current
		if delta == 0 {
			return nil
		}
		notes := fmt.Sprintf("Ajuste de inventario: %d -> %d", current, newQuantity)
		if reason != "" {
			notes += ". Motivo: " + reason
		}
		mov.ProductID = productID
		mov.UserID = userID
		mov.Type = entity.MovementTypeAdjustment
		mov.Quantity = delta
		mov.Notes = notes
		mov.CreatedAt = time.Now()
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		adjusted = true
		return productRepo.ApplyStockDelta(productID, delta)
	})
	if err != nil {
		return "", false, err
	}
	if !adjusted {
		return "", false, nil
	}
	return mov.ID, true, nil
}

// Query consulta el ledger con filtros combinables, del más reciente al más
// antiguo. Los filtros por ID con forma inválida son errores de validación,
// no de almacenamiento.
func (uc *MovementUseCase) Query(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	for _, id := range []string{filter.ProductID, filter.UserID, filter.ReferenceID} {
		if id == "" {
			continue
		}
		if err := uuid.Validate(id); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.movRepo.Query(filter)
}

// GetMovement obtiene un movimiento por ID.
func (uc *MovementUseCase) GetMovement(id string) (*entity.InventoryMovement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
