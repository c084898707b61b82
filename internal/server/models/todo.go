// Package models defines the server-side todo data model, the optional-fields
// patch used for partial updates, and the mapping tables for storage columns
// and the public API schema.
package models

// Todo is a single persisted todo record.
type Todo struct {
	// ID is assigned by the store on first save and never changes.
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

// NewTodo returns an unsaved todo; new todos always start incomplete.
func NewTodo(title, description string) *Todo {
	return &Todo{
		Title:       title,
		Description: description,
		Complete:    false,
	}
}

// TodoPatch carries the fields of a partial update. A nil field was not
// supplied and keeps its stored value; a non-nil field overrides it, even
// when it points at a zero value.
type TodoPatch struct {
	Title       *string
	Description *string
	Complete    *bool
}

// Empty reports whether the patch carries no fields.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Complete == nil
}

// Merge returns a copy of existing with the supplied patch fields applied.
// existing is not modified and the ID is always preserved.
func Merge(existing *Todo, patch TodoPatch) *Todo {
	merged := *existing

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Complete != nil {
		merged.Complete = *patch.Complete
	}

	return &merged
}
