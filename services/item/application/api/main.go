package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstack/pkg/app"
	"github.com/ghuser/itemstack/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemstack/services/item/application/services"
)

// ItemRoutes registers item endpoints and connection-info on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	log := a.Logger.With("service", "item")

	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs, log).Execute)
		r.Post("/", handlers.NewPostItemHandler(svcs, log).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs, log).Execute)
		r.Put("/{id}", handlers.NewPutItemHandler(svcs, log).Execute)
		r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs, log).Execute)
	})
	r.Get("/db-info", handlers.NewGetDBInfoHandler(a.Store, a.AdminInterfaceURL).Execute)
}
