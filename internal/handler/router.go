package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/menu-order-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса меню и заказов.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(h.capability.Middleware)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(h.capability.RequireAdmin)

			r.Post("/", h.CreateCategory)
			r.Patch("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.capability.RequireAdmin)

			r.Post("/", h.CreateProduct)
			r.Patch("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/", h.CreateBasket)

		r.Route("/{cartid}", func(r chi.Router) {
			r.Get("/", h.GetBasket)
			r.Post("/", h.AddLine)
			r.Delete("/", h.DeleteBasket)

			r.Route("/line/{productid}", func(r chi.Router) {
				r.Get("/", h.GetLine)
				r.Patch("/", h.UpdateLine)
				r.Delete("/", h.RemoveLine)
			})
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Get("/{id}/status", h.GetStatusHistory)

		r.Group(func(r chi.Router) {
			r.Use(h.capability.RequireAdmin)

			r.Get("/", h.ListOrders)
			r.Post("/{id}/status", h.AppendStatus)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
