package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/itemstack/pkg/errhttp"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/services/item/domain/models"
)

// ItemRequest is the request body for POST and PUT.
type ItemRequest struct {
	Name string `json:"name" validate:"required" example:"milk"`
} // @name ItemRequest

// ItemResponse is the JSON shape of an item.
type ItemResponse struct {
	ID        string    `json:"id"        example:"665f1c2e8b3a4d0012a3b4c5"`
	Name      string    `json:"name"      example:"milk"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00.000Z"`
} // @name ItemResponse

func toResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		CreatedAt: item.CreatedAt,
	}
}

// writeError maps err to a status through errhttp, logging server-side
// failures with the operation name and item id.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, op, id string, err error) {
	logFailure(r, log, errhttp.Status(err), op, id, err)
	errhttp.WriteError(w, err)
}

// writeErrorStatus is writeError for the cases where the handler, not the
// error, decides the status.
func writeErrorStatus(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, op, id string, err error) {
	logFailure(r, log, status, op, id, err)
	errhttp.WriteErrorStatus(w, status, err)
}

func logFailure(r *http.Request, log logger.Logger, status int, op, id string, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	log.ErrorContext(r.Context(), "item operation failed",
		"op", op,
		"item_id", id,
		"error", err,
	)
}
