package dto

import (
	"time"

	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// RegisterMovementRequest petición para registrar un movimiento manual
// (purchase o adjustment; sale y return los genera el módulo de ventas).
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id"`
	Type        string `json:"type"`
	Quantity    int64  `json:"quantity"`
	ReferenceID string `json:"reference_id"`
	Notes       string `json:"notes"`
}

// AdjustStockRequest petición para ajustar el stock a una cantidad absoluta.
type AdjustStockRequest struct {
	NewQuantity int64  `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// MovementResponse movimiento del ledger en respuestas.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Barcode     string    `json:"barcode,omitempty"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMovementResponse convierte la entidad a su representación HTTP.
func ToMovementResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Barcode:     m.Barcode,
		UserID:      m.UserID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		ReferenceID: m.ReferenceID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

// QueryMovementsRequest filtros para consultar el ledger (query params).
type QueryMovementsRequest struct {
	ProductID string     `query:"product_id"`
	UserID    string     `query:"user_id"`
	Type      string     `query:"type"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
	Limit     int        `query:"limit"`
}
