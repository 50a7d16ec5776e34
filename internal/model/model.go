// Package model содержит доменные сущности сервиса меню и заказов.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию меню.
type Category struct {
	ID   int64
	Name string
}

// Product описывает позицию меню. Цена хранится в копейках.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	Description string
	Image       string
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Basket представляет корзину покупателя до оформления заказа.
type Basket struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// BasketLine описывает одну строку корзины: товар и его количество.
// Пара (BasketID, ProductID) уникальна — на товар приходится не более
// одной строки.
type BasketLine struct {
	BasketID  uuid.UUID
	ProductID int64
	Quantity  int
}

// BasketItem описывает строку корзины вместе с актуальными данными товара.
type BasketItem struct {
	ProductID int64
	Name      string
	Price     int64
	Quantity  int
}

// BasketContents содержит корзину, её строки и вычисленную сумму в копейках.
// Сумма всегда вычисляется при чтении и нигде не хранится.
type BasketContents struct {
	Basket Basket
	Items  []BasketItem
	Total  int64
}

// Order описывает оформленный заказ. Total — снимок суммы корзины
// на момент оформления, в копейках.
type Order struct {
	ID        int64
	Name      string
	Total     int64
	CreatedAt time.Time
}

// OrderLine описывает строку заказа. Название и цена скопированы из товара
// при оформлении: заказ остаётся валидным после удаления корзины или товара.
type OrderLine struct {
	OrderID   int64
	ProductID int64
	Name      string
	Price     int64
	Quantity  int
}

// OrderDetail содержит заказ, его строки и текущий статус.
type OrderDetail struct {
	Order  Order
	Lines  []OrderLine
	Status OrderStatus
}

// User описывает пользователя, полученного из слоя аутентификации.
// Сервис использует его только как источник признака администратора.
type User struct {
	ID      int64
	IsAdmin bool
}
