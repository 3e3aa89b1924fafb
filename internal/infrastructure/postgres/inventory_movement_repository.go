package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el ledger no tiene UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, user_id, movement_type, quantity, reference_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type,
		movement.Quantity, nullIfEmpty(movement.ReferenceID), nullIfEmpty(movement.Notes),
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID con datos del producto. nil, nil si no existe.
func (r *InventoryMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `
		SELECT m.id, m.product_id, m.user_id, m.movement_type, m.quantity,
		       COALESCE(m.reference_id, ''), COALESCE(m.notes, ''), m.created_at,
		       p.name, COALESCE(p.barcode, '')
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.id = $1`
	var m entity.InventoryMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
		&m.ReferenceID, &m.Notes, &m.CreatedAt, &m.ProductName, &m.Barcode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Query devuelve movimientos filtrados, del más reciente al más antiguo.
// Una sola consulta parametrizada: los filtros vacíos no agregan condiciones.
func (r *InventoryMovementRepo) Query(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT m.id, m.product_id, m.user_id, m.movement_type, m.quantity,
		       COALESCE(m.reference_id, ''), COALESCE(m.notes, ''), m.created_at,
		       p.name, COALESCE(p.barcode, '')
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		WHERE ($1 = '' OR m.product_id = $1::uuid)
		  AND ($2 = '' OR m.user_id = $2::uuid)
		  AND ($3 = '' OR m.movement_type = $3)
		  AND ($4 = '' OR m.reference_id = $4::uuid)
		  AND ($5::timestamptz IS NULL OR m.created_at >= $5)
		  AND ($6::timestamptz IS NULL OR m.created_at <= $6)
		ORDER BY m.created_at DESC
		LIMIT $7`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(context.Background(), query,
		filter.ProductID, filter.UserID, filter.Type, filter.ReferenceID,
		filter.From, filter.To, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.ReferenceID, &m.Notes, &m.CreatedAt, &m.ProductName, &m.Barcode); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByReference suma las cantidades de los movimientos que referencian una
// venta. Tipo vacío suma todos los tipos (neto de la referencia).
func (r *InventoryMovementRepo) SumByReference(referenceID, movementType string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_movements
		WHERE reference_id = $1 AND ($2 = '' OR movement_type = $2)`,
		referenceID, movementType,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum by reference: %w", err)
	}
	return sum, nil
}
