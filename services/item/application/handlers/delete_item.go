package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	appsvcs "github.com/ghuser/itemstack/services/item/application/services"
)

// deletedMessage is the body message of a successful delete.
const deletedMessage = "Item deleted successfully"

// DeleteItemHandler handles DELETE /items/{id}.
type DeleteItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, log logger.Logger) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, log: log}
}

// Execute deletes an item.
//
//	@Summary		Delete item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	httpx.MessageResponse
//	@Failure		404	{object}	httpx.MessageResponse
//	@Failure		500	{object}	httpx.MessageResponse
//	@Router			/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, "delete", id, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.MessageResponse{Message: deletedMessage})
}
