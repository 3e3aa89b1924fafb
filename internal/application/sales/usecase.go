package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// totalTolerance margen aceptado entre el total del caller y la suma de líneas
// antes de emitir una advertencia (el total nunca se rechaza).
var totalTolerance = decimal.NewFromFloat(0.01)

// SaleUseCase crea y cancela ventas de forma transaccional: cada operación
// escribe cabecera, líneas, movimientos del ledger y contador de stock dentro
// de una sola transacción con Commit/Rollback.
type SaleUseCase struct {
	txRunner      SaleTxRunner
	saleRepo      repository.SaleRepository
	movRepo       repository.InventoryMovementRepository
	productRepo   repository.ProductRepository
	allowNegative bool
}

// NewSaleUseCase construye el caso de uso. allowNegativeStock controla si una
// venta puede dejar el stock bajo cero (comportamiento histórico del punto de
// venta).
func NewSaleUseCase(
	txRunner SaleTxRunner,
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	allowNegativeStock bool,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:      txRunner,
		saleRepo:      saleRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		allowNegative: allowNegativeStock,
	}
}

// SaleItemInput línea de venta de entrada.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// CreateSaleInput entrada para CreateSale. TotalAmount y TaxAmount vienen
// precalculados por el caller.
type CreateSaleInput struct {
	UserID         string
	Items          []SaleItemInput
	PaymentMethod  string
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	CustomerName   string
	Notes          string
}

// CreateSale valida la entrada y registra la venta en una transacción:
// cabecera en paid, y por cada línea el detalle, el movimiento `sale`
// (cantidad negativa, referencia a la venta) y el débito del contador de
// stock, en ese orden. Cualquier fallo revierte todo.
func (uc *SaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (string, error) {
	// Validación completa antes de cualquier escritura.
	if input.UserID == "" || len(input.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(input.PaymentMethod) {
		return "", domain.ErrInvalidInput
	}
	if input.TotalAmount.IsNegative() || input.TaxAmount.IsNegative() || input.DiscountAmount.IsNegative() {
		return "", domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return "", domain.ErrInvalidInput
		}
		if item.UnitPrice.IsNegative() || item.Discount.IsNegative() {
			return "", domain.ErrInvalidInput
		}
	}
	uc.warnOnTotalMismatch(input)

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		CustomerName:   input.CustomerName,
		TotalAmount:    input.TotalAmount,
		TaxAmount:      input.TaxAmount,
		DiscountAmount: input.DiscountAmount,
		PaymentMethod:  input.PaymentMethod,
		Status:         entity.SaleStatusPaid,
		Notes:          input.Notes,
		SaleDate:       now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := saleRepo.CreateHeader(sale); err != nil {
			return err
		}
		for _, item := range input.Items {
			li := &entity.SaleLineItem{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
			}
			li.Subtotal = li.ComputeSubtotal()
			if err := saleRepo.CreateLineItem(li); err != nil {
				return err
			}
			if !uc.allowNegative {
				current, err := productRepo.StockForUpdate(item.ProductID)
				if err != nil {
					return err
				}
				if current < item.Quantity {
					return domain.ErrInsufficientStock
				}
			}
			// Primero el asiento en el ledger, después el contador.
			mov := &entity.InventoryMovement{
				ProductID:   item.ProductID,
				UserID:      input.UserID,
				Type:        entity.MovementTypeSale,
				Quantity:    -item.Quantity,
				ReferenceID: sale.ID,
				Notes:       fmt.Sprintf("Venta #%s", sale.ID),
				CreatedAt:   now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			if err := productRepo.ApplyStockDelta(item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sale.ID, nil
}

// CancelSale pasa la venta a canceled y restaura el inventario: por cada línea
// un movimiento `return` (cantidad positiva, misma referencia) y el crédito
// del contador. Idempotencia: una venta ya cancelada devuelve
// domain.ErrSaleAlreadyCanceled sin escribir nada.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID, userID, reason string) error {
	if saleID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Canceled() {
			return domain.ErrSaleAlreadyCanceled
		}

		// Las notas previas nunca se pierden: se concatena un marcador con fecha.
		if reason == "" {
			reason = "Sin motivo"
		}
		marker := fmt.Sprintf("[%s] CANCELADA: %s", now.Format("2006-01-02 15:04:05"), reason)
		notes := marker
		if sale.Notes != "" {
			notes = sale.Notes + "\n" + marker
		}
		if err := saleRepo.MarkCanceled(saleID, notes); err != nil {
			return err
		}

		items, err := saleRepo.GetLineItems(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			mov := &entity.InventoryMovement{
				ProductID:   item.ProductID,
				UserID:      userID,
				Type:        entity.MovementTypeReturn,
				Quantity:    item.Quantity,
				ReferenceID: saleID,
				Notes:       fmt.Sprintf("Cancelación de venta #%s: %s", saleID, reason),
				CreatedAt:   now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			if err := productRepo.ApplyStockDelta(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSale devuelve la venta completa (cabecera + líneas). Solo lectura.
func (uc *SaleUseCase) GetSale(saleID string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetLineItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// ListSales lista ventas por filtros, de la más reciente a la más antigua.
// Un filtro de usuario con forma inválida es un error de validación, no de
// almacenamiento.
func (uc *SaleUseCase) ListSales(filter repository.SaleFilter) ([]*entity.Sale, error) {
	if filter.UserID != "" {
		if err := uuid.Validate(filter.UserID); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.saleRepo.List(filter)
}

// LedgerAudit resultado de contrastar el ledger de movimientos contra las
// líneas de una venta.
type LedgerAudit struct {
	SaleID      string
	Status      string
	UnitsSold   int64
	LedgerNet   int64
	ExpectedNet int64
	Consistent  bool
}

// AuditLedger verifica el cuadre entre la venta y el ledger: una venta pagada
// debe netear -(unidades vendidas) entre sus movimientos `sale` y `return`, y
// una cancelada debe netear cero (cada salida compensada por una devolución).
func (uc *SaleUseCase) AuditLedger(saleID string) (*LedgerAudit, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetLineItems(saleID)
	if err != nil {
		return nil, err
	}
	var units int64
	for _, item := range items {
		units += item.Quantity
	}
	net, err := uc.movRepo.SumByReference(saleID, "")
	if err != nil {
		return nil, err
	}
	expected := -units
	if sale.Canceled() {
		expected = 0
	}
	return &LedgerAudit{
		SaleID:      saleID,
		Status:      sale.Status,
		UnitsSold:   units,
		LedgerNet:   net,
		ExpectedNet: expected,
		Consistent:  net == expected,
	}, nil
}

// warnOnTotalMismatch contrasta el total del caller contra la suma de líneas y
// deja un log estructurado si difieren más que la tolerancia. No rechaza.
func (uc *SaleUseCase) warnOnTotalMismatch(input CreateSaleInput) {
	lineSum := decimal.Zero
	for _, item := range input.Items {
		li := entity.SaleLineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice, Discount: item.Discount}
		lineSum = lineSum.Add(li.ComputeSubtotal())
	}
	expected := lineSum.Add(input.TaxAmount).Sub(input.DiscountAmount)
	if expected.Sub(input.TotalAmount).Abs().GreaterThan(totalTolerance) {
		log.Warn().
			Str("user_id", input.UserID).
			Str("total_amount", input.TotalAmount.String()).
			Str("line_sum", lineSum.String()).
			Msg("total de venta no coincide con la suma de líneas")
	}
}
