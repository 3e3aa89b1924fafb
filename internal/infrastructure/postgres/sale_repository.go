package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, user_id, customer_name, total_amount, tax_amount, discount_amount, payment_method, status, notes, sale_date`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerName, notes *string
	err := row.Scan(
		&s.ID, &s.UserID, &customerName, &s.TotalAmount, &s.TaxAmount,
		&s.DiscountAmount, &s.PaymentMethod, &s.Status, &notes, &s.SaleDate,
	)
	if err != nil {
		return nil, err
	}
	if customerName != nil {
		s.CustomerName = *customerName
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}

// CreateHeader persiste la cabecera de la venta.
func (r *SaleRepo) CreateHeader(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, user_id, customer_name, total_amount, tax_amount, discount_amount, payment_method, status, notes, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.UserID, nullIfEmpty(sale.CustomerName),
		sale.TotalAmount, sale.TaxAmount, sale.DiscountAmount,
		sale.PaymentMethod, sale.Status, nullIfEmpty(sale.Notes), sale.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea de venta.
func (r *SaleRepo) CreateLineItem(item *entity.SaleLineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity,
		item.UnitPrice, item.Discount, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. nil, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetLineItems devuelve las líneas de una venta con el nombre del producto.
func (r *SaleRepo) GetLineItems(saleID string) ([]entity.SaleLineItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.discount, si.subtotal, p.name
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleLineItem
	for rows.Next() {
		var li entity.SaleLineItem
		if err := rows.Scan(&li.ID, &li.SaleID, &li.ProductID, &li.Quantity,
			&li.UnitPrice, &li.Discount, &li.Subtotal, &li.ProductName); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// MarkCanceled fija status canceled solo si la venta sigue en paid; el caso de
// uso ya verificó el estado, la condición extra cierra la ventana entre lectura
// y escritura dentro de la misma transacción.
func (r *SaleRepo) MarkCanceled(saleID, notes string) error {
	query := `UPDATE sales SET status = $2, notes = $3 WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		saleID, entity.SaleStatusCanceled, notes, entity.SaleStatusPaid)
	if err != nil {
		return fmt.Errorf("mark sale canceled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleAlreadyCanceled
	}
	return nil
}

// List devuelve ventas filtradas, de la más reciente a la más antigua.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE ($1 = '' OR user_id = $1::uuid)
		  AND ($2 = '' OR payment_method = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4::timestamptz IS NULL OR sale_date >= $4)
		  AND ($5::timestamptz IS NULL OR sale_date <= $5)
		ORDER BY sale_date DESC
		LIMIT $6`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(context.Background(), query,
		filter.UserID, filter.PaymentMethod, filter.Status, filter.From, filter.To, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByUserInWindow devuelve las ventas del usuario en [from, to), ascendente.
func (r *SaleRepo) ListByUserInWindow(userID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE user_id = $1 AND sale_date >= $2 AND sale_date < $3
		ORDER BY sale_date`
	rows, err := r.q.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales in window: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
