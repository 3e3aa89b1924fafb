package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

const sessionColumns = `id, user_id, opening_amount, closing_amount, cash_sales, card_sales, other_sales, opening_time, closing_time, status, notes`

// CashSessionRepo implementación de CashSessionRepository sobre PostgreSQL (usable con pool o tx).
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

func scanSession(row pgx.Row) (*entity.CashRegisterSession, error) {
	var s entity.CashRegisterSession
	var notes *string
	err := row.Scan(
		&s.ID, &s.UserID, &s.OpeningAmount, &s.ClosingAmount,
		&s.CashSales, &s.CardSales, &s.OtherSales,
		&s.OpeningTime, &s.ClosingTime, &s.Status, &notes,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}

// Create inserta la sesión en estado open. El índice único parcial
// (user_id WHERE status = 'open') hace que verificación e inserción sean una
// sola operación atómica: una segunda apertura devuelve domain.ErrConflict.
func (r *CashSessionRepo) Create(session *entity.CashRegisterSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_register_sessions (id, user_id, opening_amount, opening_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.UserID, session.OpeningAmount,
		session.OpeningTime, session.Status, nullIfEmpty(session.Notes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. nil, nil si no existe.
func (r *CashSessionRepo) GetByID(id string) (*entity.CashRegisterSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions WHERE id = $1`
	s, err := scanSession(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash session: %w", err)
	}
	return s, nil
}

// GetOpenByUser obtiene la sesión abierta del usuario. nil, nil si no hay.
func (r *CashSessionRepo) GetOpenByUser(userID string) (*entity.CashRegisterSession, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM cash_register_sessions
		WHERE user_id = $1 AND status = $2
		ORDER BY opening_time DESC LIMIT 1`
	s, err := scanSession(r.q.QueryRow(context.Background(), query, userID, entity.SessionStatusOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return s, nil
}

// Close es un UPDATE condicional sobre (id, user_id, status = open).
func (r *CashSessionRepo) Close(sessionID, userID string, close repository.SessionClose) error {
	query := `
		UPDATE cash_register_sessions
		SET closing_amount = $3, cash_sales = $4, card_sales = $5, other_sales = $6,
		    closing_time = $7, status = $8, notes = $9
		WHERE id = $1 AND user_id = $2 AND status = $10`
	tag, err := r.q.Exec(context.Background(), query,
		sessionID, userID,
		close.ClosingAmount, close.CashSales, close.CardSales, close.OtherSales,
		close.ClosingTime, entity.SessionStatusClosed, nullIfEmpty(close.Notes),
		entity.SessionStatusOpen,
	)
	if err != nil {
		return fmt.Errorf("close cash session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
