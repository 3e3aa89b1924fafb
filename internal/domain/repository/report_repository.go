package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesSummary resume las ventas pagadas de un día.
type DailySalesSummary struct {
	Date           time.Time
	SalesCount     int64
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	CashAmount     decimal.Decimal
	CardAmount     decimal.Decimal
	TransferAmount decimal.Decimal
}

// TopProduct es una fila del ranking de productos más vendidos.
type TopProduct struct {
	ProductID     string
	Name          string
	Barcode       string
	TotalQuantity int64
	TotalAmount   decimal.Decimal
}

// CashFlow resume el flujo de caja de un día por método de pago.
type CashFlow struct {
	CashSales     decimal.Decimal
	CardSales     decimal.Decimal
	TransferSales decimal.Decimal
	TotalSales    decimal.Decimal
	Transactions  int64
}

// StockValueRow es el valor de inventario de un producto (stock × costo).
type StockValueRow struct {
	ProductID     string
	Name          string
	Barcode       string
	StockQuantity int64
	Cost          decimal.Decimal
	TotalValue    decimal.Decimal
}

// MovementTypeSummary agrupa movimientos del ledger por tipo.
type MovementTypeSummary struct {
	Type          string
	Count         int64
	TotalQuantity int64
}

// ReportRepository agrupa las consultas de solo lectura para reportes.
// Los consumidores solo agregan datos; la presentación (PDF/CSV) queda fuera.
type ReportRepository interface {
	SalesSummaryByDay(ctx context.Context, from, to time.Time) ([]DailySalesSummary, error)
	TopSellingProducts(ctx context.Context, from, to *time.Time, limit int) ([]TopProduct, error)
	DailyCashFlow(ctx context.Context, day time.Time) (*CashFlow, error)
	StockValue(ctx context.Context) ([]StockValueRow, decimal.Decimal, error)
	MovementSummaryByType(ctx context.Context, from, to *time.Time) ([]MovementTypeSummary, error)
}
