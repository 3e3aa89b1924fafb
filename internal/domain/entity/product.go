package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity es el contador de stock; solo se muta a través de las
// operaciones del ledger de inventario, de forma que siempre sea igual a la
// suma con signo de los movimientos del producto.
type Product struct {
	ID            string
	Barcode       string // código de barras, único si no es vacío
	Name          string
	Description   string
	CategoryID    string // vacío si no tiene categoría
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo de adquisición
	StockQuantity int64
	MinStockLevel int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinimum indica si el producto está en o bajo su nivel mínimo de stock.
func (p *Product) BelowMinimum() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// Category representa una categoría de productos.
type Category struct {
	ID           string
	Name         string
	Description  string
	ProductCount int64 // derivado en consultas de listado
	CreatedAt    time.Time
}
