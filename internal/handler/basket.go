package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/repository"
)

type basketResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type basketLineResponse struct {
	BasketID  string `json:"basket_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type basketItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type basketContentsResponse struct {
	Basket basketResponse       `json:"basket"`
	Lines  []basketItemResponse `json:"lines"`
	Total  float64              `json:"total"`
}

func newBasketLineResponse(line model.BasketLine) basketLineResponse {
	return basketLineResponse{
		BasketID:  line.BasketID.String(),
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}
}

func parseBasketIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "cartid"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CreateBasket создаёт новую пустую корзину. Тело запроса не требуется.
func (h *Handler) CreateBasket(w http.ResponseWriter, r *http.Request) {
	basket, err := h.service.CreateBasket(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "create basket")
		return
	}

	h.writeJSON(w, http.StatusCreated, basketResponse{
		ID:        basket.ID.String(),
		CreatedAt: formatTime(basket.CreatedAt),
	})
}

// GetBasket возвращает корзину, её строки и вычисленную сумму.
func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket not found")
		return
	}

	contents, err := h.service.GetBasket(r.Context(), basketID)
	if err != nil {
		h.handleServiceError(w, err, "get basket", zap.String("basketID", basketID.String()))
		return
	}

	lines := make([]basketItemResponse, 0, len(contents.Items))
	for _, item := range contents.Items {
		lines = append(lines, basketItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     centsToUnits(item.Price),
			Quantity:  item.Quantity,
		})
	}

	h.writeJSON(w, http.StatusOK, basketContentsResponse{
		Basket: basketResponse{
			ID:        contents.Basket.ID.String(),
			CreatedAt: formatTime(contents.Basket.CreatedAt),
		},
		Lines: lines,
		Total: centsToUnits(contents.Total),
	})
}

// DeleteBasket удаляет корзину вместе со строками.
func (h *Handler) DeleteBasket(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket not found")
		return
	}

	if err := h.service.DeleteBasket(r.Context(), basketID); err != nil {
		h.handleServiceError(w, err, "delete basket", zap.String("basketID", basketID.String()))
		return
	}

	h.writeJSON(w, http.StatusOK, struct{}{})
}

type addLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// AddLine добавляет строку в корзину. Повторное добавление того же товара
// заменяет количество.
func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket not found")
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.service.AddLine(r.Context(), basketID, req.ProductID, req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "add basket line",
			zap.String("basketID", basketID.String()),
			zap.Int64("productID", req.ProductID))
		return
	}

	h.writeJSON(w, http.StatusCreated, newBasketLineResponse(*line))
}

// GetLine возвращает строку корзины.
func (h *Handler) GetLine(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket not found")
		return
	}
	productID, ok := parseIDParam(r, "productid")
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket line not found")
		return
	}

	line, err := h.service.GetLine(r.Context(), basketID, productID)
	if err != nil {
		h.handleServiceError(w, err, "get basket line",
			zap.String("basketID", basketID.String()),
			zap.Int64("productID", productID))
		return
	}

	h.writeJSON(w, http.StatusOK, newBasketLineResponse(*line))
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateLine заменяет количество в строке корзины. Отсутствующая строка —
// это «нечего обновлять», ошибка класса 400.
func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	productID, ok := parseIDParam(r, "productid")
	if !ok {
		h.writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	var req updateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.service.UpdateLine(r.Context(), basketID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrLineNotFound) {
			h.writeError(w, http.StatusBadRequest, "nothing to update")
			return
		}
		h.handleServiceError(w, err, "update basket line",
			zap.String("basketID", basketID.String()),
			zap.Int64("productID", productID))
		return
	}

	h.writeJSON(w, http.StatusOK, newBasketLineResponse(*line))
}

// RemoveLine удаляет строку корзины. Повторное удаление отвечает 404.
func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	basketID, ok := parseBasketIDParam(r)
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket line not found")
		return
	}
	productID, ok := parseIDParam(r, "productid")
	if !ok {
		h.writeError(w, http.StatusNotFound, "basket line not found")
		return
	}

	if err := h.service.RemoveLine(r.Context(), basketID, productID); err != nil {
		h.handleServiceError(w, err, "remove basket line",
			zap.String("basketID", basketID.String()),
			zap.Int64("productID", productID))
		return
	}

	h.writeJSON(w, http.StatusOK, struct{}{})
}
