package model

import "time"

// OrderStatusEvent — одна запись в журнале статусов заказа.
// События никогда не изменяются и не удаляются.
type OrderStatusEvent struct {
	ID         int64
	OrderID    int64
	Status     OrderStatus
	OccurredAt time.Time
}

// OrderStatus описывает статус заказа. История статусов хранится как
// неизменяемый append-only журнал событий: текущий статус заказа — это
// его последнее событие.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// nextStatus задаёт линейную цепочку NEW → CONFIRMED → PREPARING → READY → COMPLETED.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusNew:       OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusCompleted,
}

// IsValid сообщает, известен ли статус системе.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, является ли статус конечным. Из конечного статуса
// переходы невозможны.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition проверяет допустимость перехода из статуса from в статус to.
// CANCELLED достижим из любого неконечного статуса.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() || !to.IsValid() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	return nextStatus[from] == to
}
