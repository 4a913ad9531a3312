package handlers

import (
	"fmt"
	"net/http"

	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	pkgvalidator "github.com/ghuser/itemstack/pkg/validator"
	appsvcs "github.com/ghuser/itemstack/services/item/application/services"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
)

// PostItemHandler handles POST /items.
type PostItemHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, log logger.Logger) *PostItemHandler {
	return &PostItemHandler{svc: svc, log: log}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an item; the name is stored exactly as sent
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ItemRequest	true	"Item to create"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	httpx.MessageResponse
//	@Failure		500		{object}	httpx.MessageResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, err := pkgvalidator.Decode[ItemRequest](r)
	if err != nil {
		err = fmt.Errorf("%w: %s", itemdomain.ErrInvalidItemName, pkgvalidator.Message(err))
		writeError(w, r, h.log, "create", "", err)
		return
	}

	item, err := h.svc.Item.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, h.log, "create", "", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(item))
}
