// Package handler содержит HTTP-обработчики API сервиса меню и заказов.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/menu-order-system/internal/middleware"
	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
	"github.com/mmeshcher/menu-order-system/internal/repository"
	"github.com/mmeshcher/menu-order-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context, p paging.Params) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, p paging.Params) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateBasket(ctx context.Context) (*model.Basket, error)
	GetBasket(ctx context.Context, basketID uuid.UUID) (*model.BasketContents, error)
	DeleteBasket(ctx context.Context, basketID uuid.UUID) error
	AddLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error)
	UpdateLine(ctx context.Context, basketID uuid.UUID, productID int64, quantity int) (*model.BasketLine, error)
	GetLine(ctx context.Context, basketID uuid.UUID, productID int64) (*model.BasketLine, error)
	RemoveLine(ctx context.Context, basketID uuid.UUID, productID int64) error

	CreateOrder(ctx context.Context, basketID uuid.UUID, name string) (*model.Order, []model.OrderLine, error)
	GetOrder(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	GetStatusHistory(ctx context.Context, orderID int64) ([]model.OrderStatusEvent, error)
	AppendStatus(ctx context.Context, orderID int64, status string) (*model.OrderStatusEvent, error)
	ListOrders(ctx context.Context, p paging.Params) ([]model.Order, error)
}

// Handler реализует HTTP-обработчики API сервиса меню и заказов.
type Handler struct {
	service    Service
	logger     *zap.Logger
	capability *middleware.CapabilityMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, capability *middleware.CapabilityMiddleware) *Handler {
	return &Handler{
		service:    s,
		logger:     logger,
		capability: capability,
	}
}

// errorResponse — тело ответа с ошибкой класса 4xx.
type errorResponse struct {
	Error string `json:"error"`
}

// pagedResponse — страница элементов с навигационными ссылками.
type pagedResponse struct {
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
	Items  any          `json:"items"`
	Links  paging.Links `json:"_links"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, msg string) {
	h.writeJSON(w, statusCode, errorResponse{Error: msg})
}

// handleServiceError переводит ошибки сервиса в HTTP-статусы.
// Ошибки валидации и пустой патч — 400, отсутствующие сущности — 404,
// недопустимый переход статуса — 409. Ошибки хранилища логируются
// с контекстом операции и наружу отдаются без деталей.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, op string, fields ...zap.Field) {
	switch {
	case validation.IsValidationError(err),
		errors.Is(err, repository.ErrNothingToUpdate),
		errors.Is(err, repository.ErrBasketEmpty):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrBasketNotFound),
		errors.Is(err, repository.ErrLineNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrIllegalTransition):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(op, append(fields, zap.Error(err))...)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// centsToUnits переводит хранимые копейки в денежные единицы API.
func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}

// unitsToCents переводит денежные единицы API в копейки.
func unitsToCents(units float64) int64 {
	return int64(units*100 + 0.5)
}
