package handlers

import (
	"net/http"

	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	appsvcs "github.com/ghuser/itemstack/services/item/application/services"
)

// ListItemsHandler handles GET /items.
type ListItemsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, log logger.Logger) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, log: log}
}

// Execute lists every item.
//
//	@Summary		List items
//	@Description	Returns all items, newest first
//	@Tags			items
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	httpx.MessageResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Item.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, "list", "", err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
