package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja. open -> closed; closed es terminal.
const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// CashRegisterSession representa una apertura de caja de un cajero.
// Invariante: a lo sumo una sesión con status open por usuario, garantizada
// por un índice único parcial en la base de datos (no por check-then-insert).
type CashRegisterSession struct {
	ID            string
	UserID        string
	OpeningAmount decimal.Decimal
	ClosingAmount *decimal.Decimal // nil mientras está abierta
	CashSales     *decimal.Decimal // declarado por el cajero al cierre
	CardSales     *decimal.Decimal
	OtherSales    *decimal.Decimal
	OpeningTime   time.Time
	ClosingTime   *time.Time // nil mientras está abierta
	Status        string
	Notes         string
}

// Open indica si la sesión sigue abierta.
func (s *CashRegisterSession) Open() bool {
	return s.Status == SessionStatusOpen
}

// ReconciliationReport es el reporte Z de cierre de caja: comparación del
// efectivo esperado contra el contado, sobre la ventana de la sesión.
type ReconciliationReport struct {
	Session       *CashRegisterSession
	SalesCount    int
	CanceledCount int
	TotalCash     decimal.Decimal
	TotalCard     decimal.Decimal
	TotalTransfer decimal.Decimal
	TotalSales    decimal.Decimal
	TotalCanceled decimal.Decimal
	ExpectedAmount decimal.Decimal // opening + efectivo vendido
	Difference     decimal.Decimal // (closing ?? 0) − expected; negativo = faltante
	Sales          []*Sale         // ventas crudas de la ventana, para auditoría
}
