package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	pkgvalidator "github.com/ghuser/itemstack/pkg/validator"
	appsvcs "github.com/ghuser/itemstack/services/item/application/services"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
)

// PutItemHandler handles PUT /items/{id}.
type PutItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services, log logger.Logger) *PutItemHandler {
	return &PutItemHandler{svc: svc, log: log}
}

// Execute renames an item. Unlike GET and DELETE, a malformed id is a 400 here.
//
//	@Summary		Update item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Item ID"
//	@Param			request	body		ItemRequest	true	"New name"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	httpx.MessageResponse
//	@Failure		404		{object}	httpx.MessageResponse
//	@Failure		500		{object}	httpx.MessageResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := pkgvalidator.Decode[ItemRequest](r)
	if err != nil {
		err = fmt.Errorf("%w: %s", itemdomain.ErrInvalidItemName, pkgvalidator.Message(err))
		writeError(w, r, h.log, "update", id, err)
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, itemdomain.ErrInvalidItemID) {
			writeErrorStatus(w, r, h.log, http.StatusBadRequest, "update", id, itemdomain.ErrInvalidItemID)
			return
		}
		writeError(w, r, h.log, "update", id, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(item))
}
