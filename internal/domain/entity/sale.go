package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. El ciclo de vida es paid -> canceled; canceled es terminal.
const (
	SaleStatusPaid     = "paid"
	SaleStatusCanceled = "canceled"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// ValidPaymentMethod valida el método contra el catálogo de pagos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta.
// TotalAmount lo entrega el caller y no se recalcula aquí (ver DESIGN.md).
type Sale struct {
	ID             string
	UserID         string // cajero
	CustomerName   string // opcional
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	PaymentMethod  string
	Status         string
	Notes          string
	SaleDate       time.Time

	Items []SaleLineItem
}

// Canceled indica si la venta está en su estado terminal.
func (s *Sale) Canceled() bool {
	return s.Status == SaleStatusCanceled
}

// SaleLineItem es una línea de venta. Subtotal = Quantity × UnitPrice − Discount.
type SaleLineItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Subtotal  decimal.Decimal

	ProductName string // derivado de join en lecturas
}

// ComputeSubtotal calcula el subtotal de la línea a partir de sus componentes.
func (li *SaleLineItem) ComputeSubtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity)).Sub(li.Discount)
}
