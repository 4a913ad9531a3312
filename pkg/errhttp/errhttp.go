// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/itemstack/pkg/httpx"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
)

// notFoundMessage is the fixed body for 404 responses.
const notFoundMessage = "Item not found"

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorStatus(w, Status(err), err)
}

// WriteErrorStatus writes err with an explicit status. Only client errors
// (4xx other than 404) echo the error text; everything else gets a fixed message.
func WriteErrorStatus(w http.ResponseWriter, status int, err error) {
	httpx.JSONError(w, status, Message(err, status))
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrInvalidItemName):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// Message returns the client-facing message for err at the given status.
func Message(err error, status int) string {
	switch {
	case status == http.StatusNotFound:
		return notFoundMessage
	case status >= http.StatusInternalServerError:
		return httpx.SafeError(err, status, true)
	default:
		return err.Error()
	}
}
