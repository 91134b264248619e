// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Customer fields are embedded in the orders table; items live in order_items.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Customer    CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	TotalAmount decimal.Decimal `gorm:"type:numeric;not null"`
	Status      string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items       []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the customer snapshot embedded in the orders table.
type CustomerDTO struct {
	FullName string `gorm:"type:varchar(255);not null"`
	Address  string `gorm:"type:varchar(1024);not null"`
	Email    string `gorm:"type:varchar(320);not null;index"`
}

// OrderItemDTO represents one ordered line. Position keeps the submission order.
type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"type:varchar(255);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// Models lists the DTOs to migrate.
func Models() []any {
	return []any{&OrderDTO{}, &OrderItemDTO{}}
}

// fromDomain converts an order aggregate to its database representation under
// the given identifier.
func fromDomain(o *order.Order, id kernel.UUID) OrderDTO {
	orderID := id.Raw()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:        uuid.New(),
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	customer := o.Customer()
	return OrderDTO{
		ID: orderID,
		Customer: CustomerDTO{
			FullName: customer.FullName(),
			Address:  customer.Address(),
			Email:    customer.Email(),
		},
		TotalAmount: o.TotalAmount().Amount(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Items:       items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.FullName, dto.Customer.Address, dto.Customer.Email)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customer, items, total, status, dto.CreatedAt, dto.UpdatedAt)
}
