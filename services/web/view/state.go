// Package view holds the per-browser UI state of the item list page and the
// rules for moving between its modes.
//
// At most one item is being edited and at most one is awaiting delete
// confirmation. Starting one mode does not cancel the other.
package view

import "strings"

// Session value keys. Values are plain strings so any sessions.Store can hold them.
const (
	keyNewName       = "new_name"
	keyEditingID     = "editing_id"
	keyDraft         = "draft"
	keyPendingDelete = "pending_delete"
)

// State is the UI state kept between requests.
type State struct {
	NewName         string // pending new-item text
	EditingID       string
	Draft           string // draft name of the item being edited
	PendingDeleteID string
}

// Submittable reports whether name may be sent to the API: blank or
// whitespace-only names never are.
func Submittable(name string) bool {
	return strings.TrimSpace(name) != ""
}

// StartEdit puts id into edit mode with its current name as the draft.
func (s *State) StartEdit(id, currentName string) {
	s.EditingID = id
	s.Draft = currentName
}

// CancelEdit leaves edit mode and discards the draft.
func (s *State) CancelEdit() {
	s.EditingID = ""
	s.Draft = ""
}

// IsEditing reports whether id is the item being edited.
func (s State) IsEditing(id string) bool {
	return id != "" && s.EditingID == id
}

// RequestDelete asks for confirmation before deleting id.
func (s *State) RequestDelete(id string) {
	s.PendingDeleteID = id
}

// CancelDelete drops a pending delete confirmation.
func (s *State) CancelDelete() {
	s.PendingDeleteID = ""
}

// IsPendingDelete reports whether id awaits delete confirmation.
func (s State) IsPendingDelete(id string) bool {
	return id != "" && s.PendingDeleteID == id
}

// Forget clears every mode that refers to id, after it was deleted.
func (s *State) Forget(id string) {
	if s.EditingID == id {
		s.CancelEdit()
	}
	if s.PendingDeleteID == id {
		s.CancelDelete()
	}
}

// Load reads State from session values. Missing or mistyped values read as empty.
func Load(values map[any]any) State {
	str := func(k string) string {
		v, _ := values[k].(string)
		return v
	}
	return State{
		NewName:         str(keyNewName),
		EditingID:       str(keyEditingID),
		Draft:           str(keyDraft),
		PendingDeleteID: str(keyPendingDelete),
	}
}

// Store writes s into session values, removing empty fields.
func (s State) Store(values map[any]any) {
	set := func(k, v string) {
		if v == "" {
			delete(values, k)
			return
		}
		values[k] = v
	}
	set(keyNewName, s.NewName)
	set(keyEditingID, s.EditingID)
	set(keyDraft, s.Draft)
	set(keyPendingDelete, s.PendingDeleteID)
}
