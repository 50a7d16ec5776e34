package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/menu-order-system/internal/model"
	"github.com/mmeshcher/menu-order-system/internal/paging"
	"github.com/mmeshcher/menu-order-system/internal/repository"
)

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  *int64  `json:"category_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       centsToUnits(p.Price),
		Description: p.Description,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories возвращает страницу категорий меню.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	params := paging.ParseParams(r.URL.Query())

	categories, err := h.service.ListCategories(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, err, "list categories")
		return
	}

	items := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, categoryResponse{ID: c.ID, Name: c.Name})
	}

	h.writeJSON(w, http.StatusOK, pagedResponse{
		Limit:  params.Limit,
		Offset: params.Offset,
		Items:  items,
		Links:  paging.NewLinks(r.URL.Path, params, len(items)),
	})
}

// CreateCategory создаёт категорию меню.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.handleServiceError(w, err, "create category")
		return
	}

	h.writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

// UpdateCategory применяет частичное обновление категории.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req struct {
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, model.CategoryPatch{Name: req.Name})
	if err != nil {
		h.handleServiceError(w, err, "update category", zap.Int64("categoryID", id))
		return
	}

	h.writeJSON(w, http.StatusOK, categoryResponse{ID: category.ID, Name: category.Name})
}

// DeleteCategory удаляет категорию меню.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete category", zap.Int64("categoryID", id))
		return
	}

	h.writeJSON(w, http.StatusOK, struct{}{})
}

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  *int64  `json:"category_id"`
}

// ListProducts возвращает страницу товаров. Поддерживаются
// взаимоисключающие фильтры category и search.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := paging.ParseParams(r.URL.Query())

	var filter repository.ProductFilter
	if raw := r.URL.Query().Get("category"); raw != "" {
		if categoryID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.CategoryID = &categoryID
		}
	} else {
		filter.Search = r.URL.Query().Get("search")
	}

	products, err := h.service.ListProducts(r.Context(), filter, params)
	if err != nil {
		h.handleServiceError(w, err, "list products")
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, newProductResponse(p))
	}

	h.writeJSON(w, http.StatusOK, pagedResponse{
		Limit:  params.Limit,
		Offset: params.Offset,
		Items:  items,
		Links:  paging.NewLinks(r.URL.Path, params, len(items)),
	})
}

// GetProduct возвращает товар по идентификатору.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get product", zap.Int64("productID", id))
		return
	}

	h.writeJSON(w, http.StatusOK, newProductResponse(*product))
}

// CreateProduct создаёт позицию меню.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), model.Product{
		Name:        req.Name,
		Price:       unitsToCents(req.Price),
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.handleServiceError(w, err, "create product")
		return
	}

	h.writeJSON(w, http.StatusCreated, newProductResponse(*product))
}

// UpdateProduct применяет частичное обновление товара.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Image       *string  `json:"image"`
		CategoryID  *int64   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := model.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}
	if req.Price != nil {
		cents := unitsToCents(*req.Price)
		patch.Price = &cents
	}

	product, err := h.service.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		h.handleServiceError(w, err, "update product", zap.Int64("productID", id))
		return
	}

	h.writeJSON(w, http.StatusOK, newProductResponse(*product))
}

// DeleteProduct удаляет товар из меню.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "id")
	if !ok {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete product", zap.Int64("productID", id))
		return
	}

	h.writeJSON(w, http.StatusOK, struct{}{})
}
