package http

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
)

type CustomerRequest struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Customer   CustomerRequest    `json:"customer"`
	OrderItems []OrderItemRequest `json:"orderItems"`
}

func (r CreateOrderRequest) lines() []commands.OrderLine {
	lines := make([]commands.OrderLine, len(r.OrderItems))
	for i, item := range r.OrderItems {
		lines[i] = commands.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CustomerResponse struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Email    string `json:"email"`
}

// Prices are written as JSON numbers with the exact decimal digits of the
// stored amount.
type OrderItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	Customer    CustomerResponse    `json:"customer"`
	OrderItems  []OrderItemResponse `json:"orderItems"`
	TotalAmount json.Number         `json:"totalAmount"`
	OrderStatus string              `json:"orderStatus"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type OrderHistoryResponse struct {
	TotalRecords int64           `json:"totalRecords"`
	OrderItems   []OrderResponse `json:"orderItems"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	customer := o.Customer()
	items := o.Items()

	resp := OrderResponse{
		ID: o.ID().String(),
		Customer: CustomerResponse{
			FullName: customer.FullName(),
			Address:  customer.Address(),
			Email:    customer.Email(),
		},
		OrderItems:  make([]OrderItemResponse, len(items)),
		TotalAmount: json.Number(o.TotalAmount().String()),
		OrderStatus: o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
	for i, item := range items {
		resp.OrderItems[i] = OrderItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     json.Number(item.Price().String()),
			Quantity:  item.Quantity(),
		}
	}
	return resp
}

func newOrderHistoryResponse(total int64, orders []*order.Order) OrderHistoryResponse {
	resp := OrderHistoryResponse{
		TotalRecords: total,
		OrderItems:   make([]OrderResponse, len(orders)),
	}
	for i, o := range orders {
		resp.OrderItems[i] = newOrderResponse(o)
	}
	return resp
}
