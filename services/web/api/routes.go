package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/session"
	"github.com/ghuser/itemstack/services/web/handlers"
)

// WebRoutes registers the item page and its form actions on r.
func WebRoutes(r chi.Router, itemsAPI handlers.ItemsAPI, store sessions.Store, log logger.Logger) {
	h := handlers.NewPageHandler(itemsAPI, log)

	r.Group(func(r chi.Router) {
		r.Use(session.Load(store, log))

		r.Get("/", h.Show)
		r.Post("/items", h.Create)
		r.Route("/items/{id}", func(r chi.Router) {
			r.Post("/edit", h.Edit)
			r.Post("/save", h.Save)
			r.Post("/cancel-edit", h.CancelEdit)
			r.Post("/delete", h.RequestDelete)
			r.Post("/confirm-delete", h.ConfirmDelete)
			r.Post("/cancel-delete", h.CancelDelete)
		})
	})
}
