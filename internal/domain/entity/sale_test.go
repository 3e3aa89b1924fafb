package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

func TestComputeSubtotal(t *testing.T) {
	li := entity.SaleLineItem{
		Quantity:  3,
		UnitPrice: decimal.NewFromFloat(25.50),
		Discount:  decimal.NewFromFloat(5.50),
	}
	// 3 × 25.50 − 5.50 = 71.00
	assert.True(t, li.ComputeSubtotal().Equal(decimal.NewFromFloat(71)))

	sinDescuento := entity.SaleLineItem{Quantity: 2, UnitPrice: decimal.NewFromInt(10)}
	assert.True(t, sinDescuento.ComputeSubtotal().Equal(decimal.NewFromInt(20)))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMethodCash))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMethodCard))
	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMethodTransfer))
	assert.False(t, entity.ValidPaymentMethod("cheque"))
	assert.False(t, entity.ValidPaymentMethod(""))
	assert.False(t, entity.ValidPaymentMethod("CASH"), "los métodos son en minúsculas")
}

func TestValidMovementType(t *testing.T) {
	for _, tipo := range []string{
		entity.MovementTypePurchase,
		entity.MovementTypeSale,
		entity.MovementTypeAdjustment,
		entity.MovementTypeReturn,
	} {
		assert.True(t, entity.ValidMovementType(tipo), tipo)
	}
	assert.False(t, entity.ValidMovementType("transfer"))
	assert.False(t, entity.ValidMovementType("Sale"), "los tipos son en minúsculas")
}

func TestProductBelowMinimum(t *testing.T) {
	p := entity.Product{StockQuantity: 5, MinStockLevel: 5}
	assert.True(t, p.BelowMinimum(), "en el mínimo también alerta")

	p.StockQuantity = 6
	assert.False(t, p.BelowMinimum())

	p.StockQuantity = -2
	assert.True(t, p.BelowMinimum())
}
