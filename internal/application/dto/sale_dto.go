package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// SaleLineItemRequest línea de venta en la petición de creación.
type SaleLineItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest petición para registrar una venta.
// TotalAmount y TaxAmount los calcula el punto de venta (caller).
type CreateSaleRequest struct {
	Items          []SaleLineItemRequest `json:"items"`
	PaymentMethod  string                `json:"payment_method"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	CustomerName   string                `json:"customer_name"`
	Notes          string                `json:"notes"`
}

// CancelSaleRequest petición para cancelar una venta.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleLineItemResponse línea de venta en respuestas.
type SaleLineItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta completa (cabecera + líneas).
type SaleResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	CustomerName   string                 `json:"customer_name,omitempty"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	PaymentMethod  string                 `json:"payment_method"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	SaleDate       time.Time              `json:"sale_date"`
	Items          []SaleLineItemResponse `json:"items,omitempty"`
}

// ToSaleResponse convierte la entidad a su representación HTTP.
func ToSaleResponse(s *entity.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		CustomerName:   s.CustomerName,
		TotalAmount:    s.TotalAmount,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		PaymentMethod:  s.PaymentMethod,
		Status:         s.Status,
		Notes:          s.Notes,
		SaleDate:       s.SaleDate,
	}
	for _, li := range s.Items {
		resp.Items = append(resp.Items, SaleLineItemResponse{
			ProductID:   li.ProductID,
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Discount:    li.Discount,
			Subtotal:    li.Subtotal,
		})
	}
	return resp
}

// LedgerAuditResponse resultado del cuadre de una venta contra el ledger.
type LedgerAuditResponse struct {
	SaleID      string `json:"sale_id"`
	Status      string `json:"status"`
	UnitsSold   int64  `json:"units_sold"`
	LedgerNet   int64  `json:"ledger_net"`
	ExpectedNet int64  `json:"expected_net"`
	Consistent  bool   `json:"consistent"`
}

// ListSalesRequest filtros de listado de ventas (query params). Las fechas
// from/to se parsean aparte en el handler.
type ListSalesRequest struct {
	UserID        string     `query:"user_id"`
	PaymentMethod string     `query:"payment_method"`
	Status        string     `query:"status"`
	From          *time.Time `query:"-"`
	To            *time.Time `query:"-"`
	Limit         int        `query:"limit"`
}
