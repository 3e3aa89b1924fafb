package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backend/internal/application/auth"
	"github.com/jhoicas/pos-backend/internal/application/catalog"
	"github.com/jhoicas/pos-backend/internal/application/inventory"
	"github.com/jhoicas/pos-backend/internal/application/register"
	"github.com/jhoicas/pos-backend/internal/application/reports"
	"github.com/jhoicas/pos-backend/internal/application/sales"
	"github.com/jhoicas/pos-backend/internal/application/stock"
	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *catalog.ProductUseCase
	SaleUC     *sales.SaleUseCase
	MovementUC *inventory.MovementUseCase
	StockUC    *stock.StockUseCase
	SessionUC  *register.SessionUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; el alta de usuarios la hace un admin autenticado.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo de productos y categorías
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	categories := protected.Group("/categories")
	categories.Post("/", RequireRole(entity.RoleAdmin), productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.DeleteCategory)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/ledger", RequireRole(entity.RoleAdmin), saleHandler.AuditLedger)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Inventario: ledger de movimientos y stock
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.StockUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Post("/products/:id/adjust", RequireRole(entity.RoleAdmin), inventoryHandler.AdjustStock)
	invGroup.Get("/products/:id/stock", inventoryHandler.GetStock)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)

	// Sesiones de caja y reporte Z
	regGroup := protected.Group("/register")
	registerHandler := NewRegisterHandler(deps.SessionUC)
	regGroup.Post("/sessions", registerHandler.Open)
	regGroup.Get("/sessions/current", registerHandler.Current)
	regGroup.Post("/sessions/:id/close", registerHandler.Close)
	regGroup.Get("/sessions/:id/report", registerHandler.Reconciliation)

	// Reportes (solo admin)
	repGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	repGroup.Get("/sales-summary", reportHandler.SalesSummary)
	repGroup.Get("/top-products", reportHandler.TopProducts)
	repGroup.Get("/cash-flow", reportHandler.CashFlow)
	repGroup.Get("/stock-value", reportHandler.StockValue)
	repGroup.Get("/movement-summary", reportHandler.MovementSummary)
}
