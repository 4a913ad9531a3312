// Package handlers serves the item list page. Every mutation is a form POST
// that calls the API and redirects back to the page, so the list is always
// re-fetched after a create, update, or delete.
package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/session"
	"github.com/ghuser/itemstack/services/web/client"
	"github.com/ghuser/itemstack/services/web/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// ItemsAPI is the subset of the API client used by the page. Satisfied by *client.Client.
type ItemsAPI interface {
	BaseURL() string
	ListItems(ctx context.Context) ([]client.Item, error)
	CreateItem(ctx context.Context, name string) (*client.Item, error)
	UpdateItem(ctx context.Context, id, name string) (*client.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ConnectionInfo(ctx context.Context) (*client.ConnectionInfo, error)
}

// Page is the data rendered by templates/index.html.
type Page struct {
	APIURL string
	Info   *client.ConnectionInfo // nil when the API could not be reached
	Items  []client.Item
	State  view.State
}

// PageHandler renders the page and applies its form actions.
type PageHandler struct {
	api ItemsAPI
	log logger.Logger
}

// NewPageHandler returns a PageHandler using api.
func NewPageHandler(api ItemsAPI, log logger.Logger) *PageHandler {
	return &PageHandler{api: api, log: log}
}

// Show fetches the list and connection info and renders the page.
// Fetch failures are logged only; the page renders with what it has.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := Page{
		APIURL: h.api.BaseURL(),
		State:  h.state(r),
	}

	items, err := h.api.ListItems(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to fetch items", "error", err)
	}
	page.Items = items

	info, err := h.api.ConnectionInfo(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to fetch connection info", "error", err)
	}
	page.Info = info

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, page); err != nil {
		h.log.ErrorContext(ctx, "failed to render page", "error", err)
	}
}

// Create submits the pending new item. Blank names are kept as pending text
// and not sent. On success the pending text is cleared.
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	st.NewName = r.PostFormValue("name")

	if view.Submittable(st.NewName) {
		if _, err := h.api.CreateItem(r.Context(), st.NewName); err != nil {
			h.log.ErrorContext(r.Context(), "failed to create item", "error", err)
		} else {
			st.NewName = ""
		}
	}
	h.finish(w, r, st)
}

// Edit enters edit mode for the item, using its current name as the draft.
func (h *PageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	st.StartEdit(chi.URLParam(r, "id"), r.PostFormValue("name"))
	if st.Draft == "" {
		st.Draft = h.currentName(r, st.EditingID)
	}
	h.finish(w, r, st)
}

// Save submits the edit draft. A blank draft stays in edit mode unsent.
func (h *PageHandler) Save(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	id := chi.URLParam(r, "id")
	draft := r.PostFormValue("name")

	if !view.Submittable(draft) {
		st.StartEdit(id, draft)
		h.finish(w, r, st)
		return
	}

	_, err := h.api.UpdateItem(r.Context(), id, draft)
	switch {
	case err == nil:
		st.CancelEdit()
	case client.IsStatus(err, http.StatusNotFound):
		h.log.WarnContext(r.Context(), "edited item no longer exists", "item_id", id)
		st.Forget(id)
	default:
		h.log.ErrorContext(r.Context(), "failed to update item", "item_id", id, "error", err)
		st.StartEdit(id, draft)
	}
	h.finish(w, r, st)
}

// CancelEdit leaves edit mode without saving.
func (h *PageHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	st.CancelEdit()
	h.finish(w, r, st)
}

// RequestDelete asks for confirmation; nothing is deleted yet.
func (h *PageHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	st.RequestDelete(chi.URLParam(r, "id"))
	h.finish(w, r, st)
}

// ConfirmDelete deletes the item awaiting confirmation.
func (h *PageHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	id := chi.URLParam(r, "id")

	if !st.IsPendingDelete(id) {
		h.log.WarnContext(r.Context(), "delete confirmed without a pending request", "item_id", id)
		h.finish(w, r, st)
		return
	}

	err := h.api.DeleteItem(r.Context(), id)
	switch {
	case err == nil:
		st.Forget(id)
	case client.IsStatus(err, http.StatusNotFound):
		h.log.WarnContext(r.Context(), "item already deleted", "item_id", id)
		st.Forget(id)
	default:
		h.log.ErrorContext(r.Context(), "failed to delete item", "item_id", id, "error", err)
		st.CancelDelete()
	}
	h.finish(w, r, st)
}

// CancelDelete drops the pending confirmation.
func (h *PageHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	st := h.state(r)
	st.CancelDelete()
	h.finish(w, r, st)
}

func (h *PageHandler) state(r *http.Request) view.State {
	s, err := session.FromCtx(r.Context())
	if err != nil {
		return view.State{}
	}
	return view.Load(s.Values)
}

// currentName looks the item up in the list; used when the edit form did not
// carry the name.
func (h *PageHandler) currentName(r *http.Request, id string) string {
	items, err := h.api.ListItems(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to fetch items", "error", err)
		return ""
	}
	for _, it := range items {
		if it.ID == id {
			return it.Name
		}
	}
	return ""
}

// finish saves st into the session and redirects back to the page.
func (h *PageHandler) finish(w http.ResponseWriter, r *http.Request, st view.State) {
	if s, err := session.FromCtx(r.Context()); err == nil {
		st.Store(s.Values)
		if err := session.Save(w, r); err != nil {
			h.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
