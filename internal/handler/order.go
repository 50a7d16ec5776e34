package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
)

type orderResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

type orderLineResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type orderDetailResponse struct {
	Order  orderResponse       `json:"order"`
	Lines  []orderLineResponse `json:"lines"`
	Status string              `json:"status"`
}

type statusEventResponse struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

type statusHistoryResponse struct {
	CurrentStatus string                `json:"current_status"`
	Events        []statusEventResponse `json:"events"`
}

func newOrderResponse(order model.Order) orderResponse {
	return orderResponse{
		ID:        order.ID,
		Name:      order.Name,
		Total:     centsToUnits(order.Total),
		CreatedAt: formatTime(order.CreatedAt),
	}
}

func newOrderLineResponses(lines []model.OrderLine) []orderLineResponse {
	out := make([]orderLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, orderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     centsToUnits(line.Price),
			Quantity:  line.Quantity,
		})
	}
	return out
}

type createOrderRequest struct {
	CartID string `json:"cart_id"`
	Name   string `json:"name"`
}

// CreateOrder оформляет заказ из корзины: строки и сумма копируются,
// заказ получает начальный статус NEW.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	basketID, err := uuid.Parse(req.CartID)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "basket not found")
		return
	}

	order, lines, err := h.service.CreateOrder(r.Context(), basketID, req.Name)
	if err != nil {
		h.handleServiceError(w, err, "create order", zap.String("basketID", basketID.String()))
		return
	}

	h.writeJSON(w, http.StatusCreated, orderDetailResponse{
		Order:  newOrderResponse(*order),
		Lines:  newOrderLineResponses(lines),
		Status: string(model.OrderStatusNew),
	})
}

// GetOrder возвращает заказ, его строки и текущий статус.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	detail, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		h.handleServiceError(w, err, "get order", zap.Int64("orderID", orderID))
		return
	}

	h.writeJSON(w, http.StatusOK, orderDetailResponse{
		Order:  newOrderResponse(detail.Order),
		Lines:  newOrderLineResponses(detail.Lines),
		Status: string(detail.Status),
	})
}

// GetStatusHistory возвращает историю статусов заказа в порядке наступления.
func (h *Handler) GetStatusHistory(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	events, err := h.service.GetStatusHistory(r.Context(), orderID)
	if err != nil {
		h.handleServiceError(w, err, "get status history", zap.Int64("orderID", orderID))
		return
	}

	out := make([]statusEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, statusEventResponse{
			ID:         event.ID,
			Status:     string(event.Status),
			OccurredAt: formatTime(event.OccurredAt),
		})
	}

	current := string(model.OrderStatusNew)
	if len(events) > 0 {
		current = string(events[len(events)-1].Status)
	}

	h.writeJSON(w, http.StatusOK, statusHistoryResponse{
		CurrentStatus: current,
		Events:        out,
	})
}

type appendStatusRequest struct {
	Status string `json:"status"`
}

// AppendStatus добавляет событие статуса. История только растёт:
// события не изменяются и не удаляются.
func (h *Handler) AppendStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	var req appendStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.service.AppendStatus(r.Context(), orderID, req.Status)
	if err != nil {
		h.handleServiceError(w, err, "append order status",
			zap.Int64("orderID", orderID),
			zap.String("status", req.Status))
		return
	}

	h.writeJSON(w, http.StatusCreated, statusEventResponse{
		ID:         event.ID,
		Status:     string(event.Status),
		OccurredAt: formatTime(event.OccurredAt),
	})
}

// ListOrders возвращает страницу заказов, новые первыми.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := paging.ParseParams(r.URL.Query())

	orders, err := h.service.ListOrders(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, err, "list orders")
		return
	}

	items := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, newOrderResponse(order))
	}

	h.writeJSON(w, http.StatusOK, pagedResponse{
		Limit:  params.Limit,
		Offset: params.Offset,
		Items:  items,
		Links:  paging.NewLinks(r.URL.Path, params, len(items)),
	})
}
