package repository

import (
	"time"

	"github.com/jhoicas/pos-backend/internal/domain/entity"
)

// SaleFilter es el objeto de filtros para listar ventas.
type SaleFilter struct {
	UserID        string
	PaymentMethod string
	Status        string
	From          *time.Time
	To            *time.Time
	Limit         int
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	CreateHeader(sale *entity.Sale) error
	CreateLineItem(item *entity.SaleLineItem) error
	// GetByID devuelve solo la cabecera; nil, nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	GetLineItems(saleID string) ([]entity.SaleLineItem, error)
	// MarkCanceled fija status canceled y reemplaza las notas por el texto ya
	// concatenado por el caso de uso (las notas previas nunca se pierden).
	MarkCanceled(saleID, notes string) error
	List(filter SaleFilter) ([]*entity.Sale, error)
	// ListByUserInWindow devuelve las ventas de un usuario en la ventana
	// semiabierta [from, to), ordenadas por fecha ascendente.
	ListByUserInWindow(userID string, from, to time.Time) ([]*entity.Sale, error)
}
