package register

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// SessionUseCase administra las sesiones de caja (apertura, cierre y reporte Z).
// La regla "una sesión abierta por cajero" la garantiza el almacenamiento con
// un índice único parcial, no una verificación previa a la inserción.
type SessionUseCase struct {
	sessionRepo repository.CashSessionRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(sessionRepo repository.CashSessionRepository, saleRepo repository.SaleRepository) *SessionUseCase {
	return &SessionUseCase{sessionRepo: sessionRepo, saleRepo: saleRepo, now: time.Now}
}

// OpenSession abre una sesión de caja para el cajero. Devuelve
// domain.ErrConflict si ya tiene una abierta.
func (uc *SessionUseCase) OpenSession(userID string, openingAmount decimal.Decimal, notes string) (*entity.CashRegisterSession, error) {
	if userID == "" || openingAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	session := &entity.CashRegisterSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		OpeningAmount: openingAmount,
		OpeningTime:   uc.now(),
		Status:        entity.SessionStatusOpen,
		Notes:         notes,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseInput datos de cierre declarados por el cajero.
type CloseInput struct {
	ClosingAmount decimal.Decimal
	CashSales     decimal.Decimal
	CardSales     decimal.Decimal
	OtherSales    decimal.Decimal
	Notes         string
}

// CloseSession cierra la sesión del cajero. Devuelve domain.ErrNotFound si no
// existe una sesión abierta con ese id/usuario (el UPDATE condicional hace la
// verificación y el cierre en una sola operación).
func (uc *SessionUseCase) CloseSession(sessionID, userID string, input CloseInput) error {
	if sessionID == "" || userID == "" || input.ClosingAmount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.sessionRepo.Close(sessionID, userID, repository.SessionClose{
		ClosingAmount: input.ClosingAmount,
		CashSales:     input.CashSales,
		CardSales:     input.CardSales,
		OtherSales:    input.OtherSales,
		ClosingTime:   uc.now(),
		Notes:         input.Notes,
	})
}

// OpenSessionFor devuelve la sesión abierta del cajero, o nil si no hay.
func (uc *SessionUseCase) OpenSessionFor(userID string) (*entity.CashRegisterSession, error) {
	return uc.sessionRepo.GetOpenByUser(userID)
}

// GetSession obtiene una sesión por ID.
func (uc *SessionUseCase) GetSession(sessionID string) (*entity.CashRegisterSession, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// Reconciliation genera el reporte Z de la sesión: agrega las ventas del
// cajero en la ventana semiabierta [opening_time, closing_time ?? ahora) y
// contrasta el efectivo esperado contra el contado.
func (uc *SessionUseCase) Reconciliation(sessionID string) (*entity.ReconciliationReport, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}

	windowEnd := uc.now()
	if session.ClosingTime != nil {
		windowEnd = *session.ClosingTime
	}
	sales, err := uc.saleRepo.ListByUserInWindow(session.UserID, session.OpeningTime, windowEnd)
	if err != nil {
		return nil, err
	}

	report := &entity.ReconciliationReport{
		Session:       session,
		TotalCash:     decimal.Zero,
		TotalCard:     decimal.Zero,
		TotalTransfer: decimal.Zero,
		TotalCanceled: decimal.Zero,
		Sales:         sales,
	}
	for _, s := range sales {
		if s.Canceled() {
			report.CanceledCount++
			report.TotalCanceled = report.TotalCanceled.Add(s.TotalAmount)
			continue
		}
		report.SalesCount++
		switch s.PaymentMethod {
		case entity.PaymentMethodCash:
			report.TotalCash = report.TotalCash.Add(s.TotalAmount)
		case entity.PaymentMethodCard:
			report.TotalCard = report.TotalCard.Add(s.TotalAmount)
		case entity.PaymentMethodTransfer:
			report.TotalTransfer = report.TotalTransfer.Add(s.TotalAmount)
		}
	}
	report.TotalSales = report.TotalCash.Add(report.TotalCard).Add(report.TotalTransfer)
	report.ExpectedAmount = session.OpeningAmount.Add(report.TotalCash)

	closing := decimal.Zero
	if session.ClosingAmount != nil {
		closing = *session.ClosingAmount
	}
	report.Difference = closing.Sub(report.ExpectedAmount)
	return report, nil
}
