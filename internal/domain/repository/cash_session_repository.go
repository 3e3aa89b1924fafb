package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// SessionClose agrupa los datos de cierre de una sesión de caja.
type SessionClose struct {
	ClosingAmount decimal.Decimal
	CashSales     decimal.Decimal
	CardSales     decimal.Decimal
	OtherSales    decimal.Decimal
	ClosingTime   time.Time
	Notes         string
}

// CashSessionRepository define el puerto de persistencia para sesiones de caja.
type CashSessionRepository interface {
	// Create inserta la sesión en estado open. Devuelve domain.ErrConflict si
	// el usuario ya tiene una sesión abierta (índice único parcial en la DB:
	// la verificación y la inserción son una sola operación atómica).
	Create(session *entity.CashRegisterSession) error
	GetByID(id string) (*entity.CashRegisterSession, error)
	GetOpenByUser(userID string) (*entity.CashRegisterSession, error)
	// Close es un UPDATE condicional sobre (id, user_id, status = open);
	// devuelve domain.ErrNotFound si no afectó ninguna fila.
	Close(sessionID, userID string, close SessionClose) error
}
