package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// ReportUseCase expone los agregados analíticos de solo lectura.
// Todo cálculo va al SQL del repo, aquí solo normalizamos ventanas.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// SalesSummaryByDay resume las ventas pagadas por día en la ventana dada.
// Una ventana vacía se sustituye por los últimos 30 días.
func (uc *ReportUseCase) SalesSummaryByDay(ctx context.Context, from, to time.Time) ([]repository.DailySalesSummary, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return uc.reportRepo.SalesSummaryByDay(ctx, from, to)
}

// TopSellingProducts devuelve el ranking de productos más vendidos.
func (uc *ReportUseCase) TopSellingProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.reportRepo.TopSellingProducts(ctx, from, to, limit)
}

// DailyCashFlow devuelve el flujo de caja de un día por método de pago.
func (uc *ReportUseCase) DailyCashFlow(ctx context.Context, day time.Time) (*repository.CashFlow, error) {
	if day.IsZero() {
		day = time.Now()
	}
	return uc.reportRepo.DailyCashFlow(ctx, day)
}

// StockValue devuelve el valor de inventario por producto y el total.
func (uc *ReportUseCase) StockValue(ctx context.Context) ([]repository.StockValueRow, decimal.Decimal, error) {
	return uc.reportRepo.StockValue(ctx)
}

// MovementSummaryByType agrega los movimientos del ledger por tipo.
func (uc *ReportUseCase) MovementSummaryByType(ctx context.Context, from, to *time.Time) ([]repository.MovementTypeSummary, error) {
	return uc.reportRepo.MovementSummaryByType(ctx, from, to)
}
