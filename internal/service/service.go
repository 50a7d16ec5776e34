// Package service реализует бизнес-логику сервиса меню и заказов.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
	"github.com/mmeshcher/menu-order-system/internal/repository"
	"github.com/mmeshcher/menu-order-system/internal/sanitize"
	"github.com/mmeshcher/menu-order-system/internal/validation"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context, p paging.Params) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, p paging.Params) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateBasket(ctx context.Context) (*model.Basket, error)
	GetBasket(ctx context.Context, basketID uuid.UUID) (*model.BasketContents, error)
	DeleteBasket(ctx context.Context, basketID uuid.UUID) error
	UpsertLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error)
	UpdateLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error)
	GetLine(ctx context.Context, basketID uuid.UUID, productID int64) (*model.BasketLine, error)
	DeleteLine(ctx context.Context, basketID uuid.UUID, productID int64) error

	CreateOrder(ctx context.Context, basketID uuid.UUID, name string) (*model.Order, []model.OrderLine, error)
	GetOrder(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	GetStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error)
	AppendStatusEvent(ctx context.Context, orderID int64, status model.OrderStatus) (*model.OrderStatusEvent, error)
	ListOrders(ctx context.Context, p paging.Params) ([]model.Order, error)
}

// Service содержит бизнес-логику сервиса меню и заказов.
type Service struct {
	repo Repository
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// CreateCategory создаёт категорию меню.
func (s *Service) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	clean := sanitize.Clean(name)
	if err := validation.ValidateName(clean); err != nil {
		return nil, err
	}
	return s.repo.CreateCategory(ctx, clean)
}

// ListCategories возвращает страницу категорий.
func (s *Service) ListCategories(ctx context.Context, p paging.Params) ([]model.Category, error) {
	return s.repo.ListCategories(ctx, p)
}

// UpdateCategory применяет частичное обновление категории.
func (s *Service) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error) {
	if patch.Name != nil {
		clean := sanitize.Clean(*patch.Name)
		if err := validation.ValidateName(clean); err != nil {
			return nil, err
		}
		patch.Name = &clean
	}
	return s.repo.UpdateCategory(ctx, id, patch)
}

// DeleteCategory удаляет категорию. Товары категории сохраняются.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

// CreateProduct создаёт позицию меню.
func (s *Service) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Name = sanitize.Clean(p.Name)
	p.Description = sanitize.Clean(p.Description)

	if err := validation.ValidateName(p.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidatePrice(p.Price); err != nil {
		return nil, err
	}

	return s.repo.CreateProduct(ctx, p)
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

// ListProducts возвращает страницу товаров с необязательным фильтром.
func (s *Service) ListProducts(ctx context.Context, filter repository.ProductFilter, p paging.Params) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, filter, p)
}

// UpdateProduct применяет частичное обновление товара.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Name != nil {
		clean := sanitize.Clean(*patch.Name)
		if err := validation.ValidateName(clean); err != nil {
			return nil, err
		}
		patch.Name = &clean
	}
	if patch.Price != nil {
		if err := validation.ValidatePrice(*patch.Price); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		clean := sanitize.Clean(*patch.Description)
		patch.Description = &clean
	}
	return s.repo.UpdateProduct(ctx, id, patch)
}

// DeleteProduct удаляет товар.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// CreateBasket создаёт новую пустую корзину.
func (s *Service) CreateBasket(ctx context.Context) (*model.Basket, error) {
	return s.repo.CreateBasket(ctx)
}

// GetBasket возвращает корзину со строками и суммой.
func (s *Service) GetBasket(ctx context.Context, basketID uuid.UUID) (*model.BasketContents, error) {
	return s.repo.GetBasket(ctx, basketID)
}

// DeleteBasket удаляет корзину вместе со строками.
func (s *Service) DeleteBasket(ctx context.Context, basketID uuid.UUID) error {
	return s.repo.DeleteBasket(ctx, basketID)
}

// AddLine добавляет строку в корзину. Повторное добавление того же товара
// заменяет количество, а не суммирует его.
func (s *Service) AddLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error) {
	if err := validation.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return s.repo.UpsertLine(ctx, basketID, productID, quantity)
}

// UpdateLine заменяет количество в существующей строке корзины.
func (s *Service) UpdateLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error) {
	if err := validation.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return s.repo.UpdateLine(ctx, basketID, productID, quantity)
}

// GetLine возвращает строку корзины.
func (s *Service) GetLine(ctx context.Context, basketID uuid.UUID, productID int64) (*model.BasketLine, error) {
	return s.repo.GetLine(ctx, basketID, productID)
}

// RemoveLine удаляет строку корзины.
func (s *Service) RemoveLine(ctx context.Context, basketID uuid.UUID, productID int64) error {
	return s.repo.DeleteLine(ctx, basketID, productID)
}

// CreateOrder оформляет заказ из корзины. Корзина при этом не удаляется:
// её удаление — отдельный явный вызов.
func (s *Service) CreateOrder(ctx context.Context, basketID uuid.UUID, name string) (*model.Order, []model.OrderLine, error) {
	clean := sanitize.Clean(name)
	if err := validation.ValidateName(clean); err != nil {
		return nil, nil, err
	}
	return s.repo.CreateOrder(ctx, basketID, clean)
}

// GetOrder возвращает заказ со строками и текущим статусом.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	return s.repo.GetOrder(ctx, orderID)
}

// GetStatusHistory возвращает журнал статусов заказа по возрастанию времени.
func (s *Service) GetStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error) {
	return s.repo.GetStatusHistory(ctx, orderID)
}

// AppendStatus добавляет событие статуса к заказу. Допустимость перехода
// проверяется относительно последнего события журнала.
func (s *Service) AppendStatus(ctx context.Context, orderID int64, status string) (*model.OrderStatusEvent, error) {
	target := model.OrderStatus(status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %q", validation.ErrInvalidStatus, status)
	}
	return s.repo.AppendStatusEvent(ctx, orderID, target)
}

// ListOrders возвращает страницу заказов, новые первыми.
func (s *Service) ListOrders(ctx context.Context, p paging.Params) ([]model.Order, error) {
	return s.repo.ListOrders(ctx, p)
}
