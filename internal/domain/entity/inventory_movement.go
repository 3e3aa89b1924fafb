package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase   = "purchase"   // compra / entrada
	MovementTypeSale       = "sale"       // venta (cantidad negativa)
	MovementTypeAdjustment = "adjustment" // ajuste manual
	MovementTypeReturn     = "return"     // devolución (cancelación de venta)
)

// ValidMovementType valida el tipo contra el catálogo de movimientos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

// InventoryMovement es un registro inmutable del ledger de inventario.
// Quantity lleva signo: positivo aumenta stock, negativo lo disminuye.
// ReferenceID apunta a la venta que originó el movimiento (tipos sale/return).
// El ledger es append-only: nunca se actualiza ni se borra un movimiento.
type InventoryMovement struct {
	ID          string
	ProductID   string
	UserID      string
	Type        string
	Quantity    int64
	ReferenceID string // vacío si no aplica
	Notes       string
	CreatedAt   time.Time

	// Campos derivados de joins en consultas de auditoría.
	ProductName string
	Barcode     string
}
