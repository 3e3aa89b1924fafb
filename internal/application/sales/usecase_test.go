package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backend/internal/application/sales"
	"github.com/jhoicas/pos-backend/internal/domain"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
	"github.com/jhoicas/pos-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore simula el estado de la base de datos. El runner de transacciones
// toma un snapshot antes de ejecutar y lo restaura si la función falla, para
// reproducir la semántica Commit/Rollback.
type memStore struct {
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	items     map[string][]entity.SaleLineItem
	movements []*entity.InventoryMovement

	// failMovementAt hace fallar el N-ésimo Create de movimiento (1-based).
	failMovementAt int
	movementCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		items:    make(map[string][]entity.SaleLineItem),
	}
}

func (s *memStore) addProduct(id string, stock int64, price float64) {
	s.products[id] = &entity.Product{
		ID:            id,
		Name:          "producto " + id,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, sale := range s.sales {
		cs := *sale
		c.sales[id] = &cs
	}
	for id, items := range s.items {
		c.items[id] = append([]entity.SaleLineItem(nil), items...)
	}
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	c.failMovementAt = s.failMovementAt
	c.movementCalls = s.movementCalls
	return c
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) CreateHeader(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) CreateLineItem(item *entity.SaleLineItem) error {
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], *item)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) GetLineItems(saleID string) ([]entity.SaleLineItem, error) {
	return append([]entity.SaleLineItem(nil), r.s.items[saleID]...), nil
}

func (r *memSaleRepo) MarkCanceled(saleID, notes string) error {
	sale, ok := r.s.sales[saleID]
	if !ok || sale.Status != entity.SaleStatusPaid {
		return domain.ErrSaleAlreadyCanceled
	}
	sale.Status = entity.SaleStatusCanceled
	sale.Notes = notes
	return nil
}

func (r *memSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		out = append(out, sale)
	}
	return out, nil
}

func (r *memSaleRepo) ListByUserInWindow(userID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.UserID == userID && !sale.SaleDate.Before(from) && sale.SaleDate.Before(to) {
			out = append(out, sale)
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movementCalls++
	if r.s.failMovementAt > 0 && r.s.movementCalls == r.s.failMovementAt {
		return errors.New("fallo simulado en el ledger")
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) Query(filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if filter.ReferenceID != "" && m.ReferenceID != filter.ReferenceID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovementRepo) SumByReference(referenceID, movementType string) (int64, error) {
	var sum int64
	for _, m := range r.s.movements {
		if m.ReferenceID == referenceID && (movementType == "" || m.Type == movementType) {
			sum += m.Quantity
		}
	}
	return sum, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error           { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) Update(p *entity.Product) error           { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) Delete(id string) error                   { return nil }
func (r *memProductRepo) GetByBarcode(b string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Search(term string, limit int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListBelowMinimum() ([]*entity.Product, error)             { return nil, nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *memProductRepo) ApplyStockDelta(productID string, delta int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *memProductRepo) CurrentQuantity(productID string) (int64, error) {
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.StockQuantity, nil
}

func (r *memProductRepo) StockForUpdate(productID string) (int64, error) {
	return r.CurrentQuantity(productID)
}

// memTxRunner reproduce la semántica transaccional: si fn devuelve error se
// restaura el estado previo (rollback); si no, los cambios quedan (commit).
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.s.clone()
	err := fn(&memSaleRepo{r.s}, &memMovementRepo{r.s}, &memProductRepo{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

func newUseCase(store *memStore, allowNegative bool) *sales.SaleUseCase {
	return sales.NewSaleUseCase(
		&memTxRunner{store},
		&memSaleRepo{store},
		&memMovementRepo{store},
		&memProductRepo{store},
		allowNegative,
	)
}

func saleInput(userID string, items ...sales.SaleItemInput) sales.CreateSaleInput {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Sub(it.Discount))
	}
	return sales.CreateSaleInput{
		UserID:        userID,
		Items:         items,
		PaymentMethod: entity.PaymentMethodCash,
		TotalAmount:   total,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_RegistraVentaYDescuentaStock(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 25.50)
	uc := newUseCase(store, true)

	saleID, err := uc.CreateSale(context.Background(), saleInput("cajero-1", sales.SaleItemInput{
		ProductID: "p1",
		Quantity:  3,
		UnitPrice: decimal.NewFromFloat(25.50),
	}))
	require.NoError(t, err)
	require.NotEmpty(t, saleID)

	// Cabecera en paid con el total del caller
	sale := store.sales[saleID]
	require.NotNil(t, sale)
	assert.Equal(t, entity.SaleStatusPaid, sale.Status)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(76.50)),
		"el total debe ser 3 × 25.50")

	// Línea con subtotal calculado
	items := store.items[saleID]
	require.Len(t, items, 1)
	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromFloat(76.50)))

	// Movimiento sale con cantidad negativa referenciando la venta
	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeSale, mov.Type)
	assert.Equal(t, int64(-3), mov.Quantity)
	assert.Equal(t, saleID, mov.ReferenceID)
	assert.Contains(t, mov.Notes, "Venta #"+saleID)

	// Contador descontado
	assert.Equal(t, int64(7), store.products["p1"].StockQuantity)
}

func TestCreateSale_MultiLinea_LosMovimientosCuadranConLasLineas(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 20, 10)
	store.addProduct("p2", 20, 5)
	uc := newUseCase(store, true)

	saleID, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		sales.SaleItemInput{ProductID: "p2", Quantity: 5, UnitPrice: decimal.NewFromInt(5)},
	))
	require.NoError(t, err)

	// La suma de movimientos sale de la venta debe ser -(unidades vendidas)
	movRepo := &memMovementRepo{store}
	sum, err := movRepo.SumByReference(saleID, entity.MovementTypeSale)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), sum)

	assert.Equal(t, int64(18), store.products["p1"].StockQuantity)
	assert.Equal(t, int64(15), store.products["p2"].StockQuantity)
}

func TestCreateSale_EntradaInvalida(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	casos := []struct {
		nombre string
		input  sales.CreateSaleInput
	}{
		{"sin items", sales.CreateSaleInput{UserID: "u1", PaymentMethod: entity.PaymentMethodCash}},
		{"sin usuario", saleInput("", sales.SaleItemInput{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})},
		{"cantidad cero", saleInput("u1", sales.SaleItemInput{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(1)})},
		{"cantidad negativa", saleInput("u1", sales.SaleItemInput{ProductID: "p1", Quantity: -2, UnitPrice: decimal.NewFromInt(1)})},
		{"precio negativo", saleInput("u1", sales.SaleItemInput{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)})},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.CreateSale(ctx, c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Método de pago desconocido
	in := saleInput("u1", sales.SaleItemInput{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	in.PaymentMethod = "cheque"
	_, err := uc.CreateSale(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ninguna validación fallida debe dejar rastro
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
	assert.Equal(t, int64(10), store.products["p1"].StockQuantity)
}

func TestCreateSale_StockInsuficiente_SinSobreventa(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 2, 10)
	uc := newUseCase(store, false) // sobreventa deshabilitada

	_, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni venta, ni movimientos, ni stock tocado
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
	assert.Equal(t, int64(2), store.products["p1"].StockQuantity)
}

func TestCreateSale_SobreventaPermitida_StockNegativo(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 2, 10)
	uc := newUseCase(store, true)

	_, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), store.products["p1"].StockQuantity,
		"con sobreventa permitida el contador puede quedar negativo")
}

func TestCreateSale_FalloParcial_RevierteTodo(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	store.addProduct("p2", 10, 10)
	store.failMovementAt = 2 // el movimiento de la segunda línea falla
	uc := newUseCase(store, true)

	_, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		sales.SaleItemInput{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	))
	require.Error(t, err)

	// La primera línea ya se había escrito; el rollback la descarta también
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
	assert.Equal(t, int64(10), store.products["p1"].StockQuantity)
	assert.Equal(t, int64(10), store.products["p2"].StockQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelSale_RestauraStockYMarcaCancelada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	saleID, err := uc.CreateSale(ctx, saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)
	require.Equal(t, int64(6), store.products["p1"].StockQuantity)

	err = uc.CancelSale(ctx, saleID, "cajero-1", "cliente se arrepintió")
	require.NoError(t, err)

	// Venta cancelada con marcador en las notas
	sale := store.sales[saleID]
	assert.Equal(t, entity.SaleStatusCanceled, sale.Status)
	assert.Contains(t, sale.Notes, "CANCELADA: cliente se arrepintió")

	// Stock restaurado vía movimiento return (el original sale no se toca)
	assert.Equal(t, int64(10), store.products["p1"].StockQuantity)
	require.Len(t, store.movements, 2)
	ret := store.movements[1]
	assert.Equal(t, entity.MovementTypeReturn, ret.Type)
	assert.Equal(t, int64(4), ret.Quantity)
	assert.Contains(t, ret.Notes, "Cancelación de venta #"+saleID)

	// El neto de movimientos de la venta queda en cero
	movRepo := &memMovementRepo{store}
	sum, err := movRepo.SumByReference(saleID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestCancelSale_PreservaNotasPrevias(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	in := saleInput("cajero-1", sales.SaleItemInput{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)})
	in.Notes = "pedido telefónico"
	saleID, err := uc.CreateSale(ctx, in)
	require.NoError(t, err)

	require.NoError(t, uc.CancelSale(ctx, saleID, "cajero-1", ""))

	sale := store.sales[saleID]
	assert.Contains(t, sale.Notes, "pedido telefónico", "las notas previas no se pierden")
	assert.Contains(t, sale.Notes, "CANCELADA: Sin motivo", "sin motivo usa el texto por defecto")
}

func TestCancelSale_DobleCancelacion_EsRechazada(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	saleID, err := uc.CreateSale(ctx, saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)
	require.NoError(t, uc.CancelSale(ctx, saleID, "cajero-1", "error de captura"))

	movimientosAntes := len(store.movements)
	stockAntes := store.products["p1"].StockQuantity

	err = uc.CancelSale(ctx, saleID, "cajero-1", "otro intento")
	require.ErrorIs(t, err, domain.ErrSaleAlreadyCanceled)

	// La segunda cancelación no escribe nada: ni movimientos ni stock
	assert.Len(t, store.movements, movimientosAntes)
	assert.Equal(t, stockAntes, store.products["p1"].StockQuantity)
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store, true)

	err := uc.CancelSale(context.Background(), "no-existe", "cajero-1", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSale
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_DevuelveCabeceraConLineas(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	saleID, err := uc.CreateSale(ctx, saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)

	sale, err := uc.GetSale(saleID)
	require.NoError(t, err)
	assert.Equal(t, saleID, sale.ID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(2), sale.Items[0].Quantity)

	_, err = uc.GetSale("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListSales
// ──────────────────────────────────────────────────────────────────────────────

func TestListSales_FiltroUsuarioMalformado_EsErrorDeValidacion(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store, true)

	_, err := uc.ListSales(repository.SaleFilter{UserID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un UUID bien formado sí llega al repositorio
	_, err = uc.ListSales(repository.SaleFilter{UserID: "7f9c24e8-3b12-4fef-91d0-49f0ac04f0cc"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuditLedger
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditLedger_VentaPagada_Cuadra(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 20, 10)
	store.addProduct("p2", 20, 5)
	uc := newUseCase(store, true)

	saleID, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
		sales.SaleItemInput{ProductID: "p2", Quantity: 4, UnitPrice: decimal.NewFromInt(5)},
	))
	require.NoError(t, err)

	audit, err := uc.AuditLedger(saleID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPaid, audit.Status)
	assert.Equal(t, int64(7), audit.UnitsSold)
	assert.Equal(t, int64(-7), audit.LedgerNet)
	assert.Equal(t, int64(-7), audit.ExpectedNet)
	assert.True(t, audit.Consistent)
}

func TestAuditLedger_VentaCancelada_NeteaCero(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 20, 10)
	uc := newUseCase(store, true)
	ctx := context.Background()

	saleID, err := uc.CreateSale(ctx, saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)
	require.NoError(t, uc.CancelSale(ctx, saleID, "cajero-1", "error de captura"))

	audit, err := uc.AuditLedger(saleID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCanceled, audit.Status)
	assert.Equal(t, int64(0), audit.LedgerNet)
	assert.Equal(t, int64(0), audit.ExpectedNet)
	assert.True(t, audit.Consistent)
}

func TestAuditLedger_LedgerManipulado_Descuadra(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 20, 10)
	uc := newUseCase(store, true)

	saleID, err := uc.CreateSale(context.Background(), saleInput("cajero-1",
		sales.SaleItemInput{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
	))
	require.NoError(t, err)

	// Asiento espurio con la misma referencia: el neto deja de cuadrar
	store.movements = append(store.movements, &entity.InventoryMovement{
		ID:          "espurio",
		ProductID:   "p1",
		UserID:      "cajero-1",
		Type:        entity.MovementTypeAdjustment,
		Quantity:    -1,
		ReferenceID: saleID,
	})

	audit, err := uc.AuditLedger(saleID)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), audit.LedgerNet)
	assert.Equal(t, int64(-2), audit.ExpectedNet)
	assert.False(t, audit.Consistent)
}

func TestAuditLedger_VentaInexistente(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store, true)

	_, err := uc.AuditLedger("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
