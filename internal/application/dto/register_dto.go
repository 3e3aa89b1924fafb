package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// OpenSessionRequest petición para abrir caja.
type OpenSessionRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Notes         string          `json:"notes"`
}

// CloseSessionRequest petición para cerrar caja. Los totales por método los
// declara el cajero al contar; el reporte Z los contrasta con lo registrado.
type CloseSessionRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount"`
	CashSales     decimal.Decimal `json:"cash_sales"`
	CardSales     decimal.Decimal `json:"card_sales"`
	OtherSales    decimal.Decimal `json:"other_sales"`
	Notes         string          `json:"notes"`
}

// SessionResponse sesión de caja en respuestas.
type SessionResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	ClosingAmount *decimal.Decimal `json:"closing_amount,omitempty"`
	OpeningTime   time.Time        `json:"opening_time"`
	ClosingTime   *time.Time       `json:"closing_time,omitempty"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes,omitempty"`
}

// ToSessionResponse convierte la entidad a su representación HTTP.
func ToSessionResponse(s *entity.CashRegisterSession) *SessionResponse {
	return &SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		OpeningAmount: s.OpeningAmount,
		ClosingAmount: s.ClosingAmount,
		OpeningTime:   s.OpeningTime,
		ClosingTime:   s.ClosingTime,
		Status:        s.Status,
		Notes:         s.Notes,
	}
}

// ReconciliationResponse reporte Z de cierre de caja.
type ReconciliationResponse struct {
	Session        *SessionResponse `json:"session"`
	SalesCount     int              `json:"sales_count"`
	CanceledCount  int              `json:"canceled_count"`
	TotalCash      decimal.Decimal  `json:"total_cash"`
	TotalCard      decimal.Decimal  `json:"total_card"`
	TotalTransfer  decimal.Decimal  `json:"total_transfer"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
	TotalCanceled  decimal.Decimal  `json:"total_canceled"`
	ExpectedAmount decimal.Decimal  `json:"expected_amount"`
	Difference     decimal.Decimal  `json:"difference"`
	Sales          []*SaleResponse  `json:"sales"`
}

// ToReconciliationResponse convierte el reporte a su representación HTTP.
func ToReconciliationResponse(r *entity.ReconciliationReport) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		Session:        ToSessionResponse(r.Session),
		SalesCount:     r.SalesCount,
		CanceledCount:  r.CanceledCount,
		TotalCash:      r.TotalCash,
		TotalCard:      r.TotalCard,
		TotalTransfer:  r.TotalTransfer,
		TotalSales:     r.TotalSales,
		TotalCanceled:  r.TotalCanceled,
		ExpectedAmount: r.ExpectedAmount,
		Difference:     r.Difference,
	}
	for _, s := range r.Sales {
		resp.Sales = append(resp.Sales, ToSaleResponse(s))
	}
	return resp
}
