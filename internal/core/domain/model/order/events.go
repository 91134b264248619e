package order

import "time"

// EventTypeStatusChanged tags every StatusChangedEvent on the wire.
const EventTypeStatusChanged = "ORDER_STATUS_CHANGED"

// StatusChangedEvent is recorded by Order.ChangeStatus and published after the
// change has been saved. Consumers must tolerate duplicates.
type StatusChangedEvent struct {
	EventType    string    `json:"eventType"`
	OrderID      string    `json:"orderId"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func newStatusChangedEvent(o *Order, occurredAt time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		EventType:    EventTypeStatusChanged,
		OrderID:      o.id.String(),
		CustomerID:   o.customer.Email(),
		CustomerName: o.customer.FullName(),
		Status:       o.status.String(),
		OccurredAt:   occurredAt,
	}
}
