package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas e inventario.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesSummaryByDay agrupa ventas pagadas por día con desglose por método de pago.
func (r *ReportRepo) SalesSummaryByDay(ctx context.Context, from, to time.Time) ([]repository.DailySalesSummary, error) {
	const query = `
	SELECT
	    DATE(sale_date)                                                            AS day,
	    COUNT(*)                                                                   AS sales_count,
	    SUM(total_amount)                                                          AS total_amount,
	    SUM(tax_amount)                                                            AS tax_amount,
	    SUM(CASE WHEN payment_method = 'cash'     THEN total_amount ELSE 0 END)    AS cash_amount,
	    SUM(CASE WHEN payment_method = 'card'     THEN total_amount ELSE 0 END)    AS card_amount,
	    SUM(CASE WHEN payment_method = 'transfer' THEN total_amount ELSE 0 END)    AS transfer_amount
	FROM sales
	WHERE sale_date >= $1 AND sale_date < $2
	  AND status = 'paid'
	GROUP BY DATE(sale_date)
	ORDER BY DATE(sale_date)`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales summary by day: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesSummary
	for rows.Next() {
		var s repository.DailySalesSummary
		if err := rows.Scan(&s.Date, &s.SalesCount, &s.TotalAmount, &s.TaxAmount,
			&s.CashAmount, &s.CardAmount, &s.TransferAmount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// TopSellingProducts devuelve el ranking de productos por unidades vendidas
// (solo ventas pagadas).
func (r *ReportRepo) TopSellingProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(p.barcode, '')  AS barcode,
	    SUM(si.quantity)         AS total_quantity,
	    SUM(si.subtotal)         AS total_amount
	FROM sale_items si
	JOIN sales    s ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.status = 'paid'
	  AND ($1::timestamptz IS NULL OR s.sale_date >= $1)
	  AND ($2::timestamptz IS NULL OR s.sale_date < $2)
	GROUP BY p.id, p.name, p.barcode
	ORDER BY total_quantity DESC
	LIMIT $3`

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Barcode, &t.TotalQuantity, &t.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// DailyCashFlow resume las ventas pagadas de un día calendario por método de pago.
func (r *ReportRepo) DailyCashFlow(ctx context.Context, day time.Time) (*repository.CashFlow, error) {
	const query = `
	SELECT
	    COALESCE(SUM(CASE WHEN payment_method = 'cash'     THEN total_amount END), 0) AS cash_sales,
	    COALESCE(SUM(CASE WHEN payment_method = 'card'     THEN total_amount END), 0) AS card_sales,
	    COALESCE(SUM(CASE WHEN payment_method = 'transfer' THEN total_amount END), 0) AS transfer_sales,
	    COALESCE(SUM(total_amount), 0)                                                AS total_sales,
	    COUNT(*)                                                                      AS transactions
	FROM sales
	WHERE sale_date >= $1 AND sale_date < $2
	  AND status = 'paid'`

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var cf repository.CashFlow
	err := r.pool.QueryRow(ctx, query, start, end).Scan(
		&cf.CashSales, &cf.CardSales, &cf.TransferSales, &cf.TotalSales, &cf.Transactions)
	if err != nil {
		return nil, fmt.Errorf("daily cash flow: %w", err)
	}
	return &cf, nil
}

// StockValue devuelve el valor de inventario por producto (stock × costo) y el total.
func (r *ReportRepo) StockValue(ctx context.Context) ([]repository.StockValueRow, decimal.Decimal, error) {
	const query = `
	SELECT id, name, COALESCE(barcode, ''), stock_quantity, cost, stock_quantity * cost AS total_value
	FROM products
	WHERE is_active
	ORDER BY total_value DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	defer rows.Close()
	var list []repository.StockValueRow
	total := decimal.Zero
	for rows.Next() {
		var v repository.StockValueRow
		if err := rows.Scan(&v.ProductID, &v.Name, &v.Barcode, &v.StockQuantity, &v.Cost, &v.TotalValue); err != nil {
			return nil, decimal.Zero, fmt.Errorf("scan stock value: %w", err)
		}
		total = total.Add(v.TotalValue)
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// MovementSummaryByType agrupa los movimientos del ledger por tipo.
func (r *ReportRepo) MovementSummaryByType(ctx context.Context, from, to *time.Time) ([]repository.MovementTypeSummary, error) {
	const query = `
	SELECT movement_type, COUNT(*), SUM(quantity)
	FROM inventory_movements
	WHERE ($1::timestamptz IS NULL OR created_at >= $1)
	  AND ($2::timestamptz IS NULL OR created_at < $2)
	GROUP BY movement_type
	ORDER BY movement_type`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementTypeSummary
	for rows.Next() {
		var m repository.MovementTypeSummary
		if err := rows.Scan(&m.Type, &m.Count, &m.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
