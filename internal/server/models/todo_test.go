package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestNewTodo_StartsIncomplete(t *testing.T) {
	todo := NewTodo("Buy groceries", "Milk, bread, and eggs")

	assert.Equal(t, int64(0), todo.ID)
	assert.Equal(t, "Buy groceries", todo.Title)
	assert.Equal(t, "Milk, bread, and eggs", todo.Description)
	assert.False(t, todo.Complete)
}

func TestMerge(t *testing.T) {
	existing := &Todo{ID: 7, Title: "Buy groceries", Description: "Milk, bread, and eggs", Complete: false}

	tests := []struct {
		name  string
		patch TodoPatch
		want  Todo
	}{
		{
			name:  "empty patch keeps everything",
			patch: TodoPatch{},
			want:  *existing,
		},
		{
			name:  "complete only",
			patch: TodoPatch{Complete: ptr(true)},
			want:  Todo{ID: 7, Title: "Buy groceries", Description: "Milk, bread, and eggs", Complete: true},
		},
		{
			name:  "title and description",
			patch: TodoPatch{Title: ptr("Buy food"), Description: ptr("Milk, bread, eggs and butter")},
			want:  Todo{ID: 7, Title: "Buy food", Description: "Milk, bread, eggs and butter", Complete: false},
		},
		{
			name:  "present zero value overrides",
			patch: TodoPatch{Title: ptr(""), Complete: ptr(false)},
			want:  Todo{ID: 7, Title: "", Description: "Milk, bread, and eggs", Complete: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(existing, tt.patch)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Equal(t, "Buy groceries", existing.Title, "existing must not be mutated")
}

func TestTodoPatch_Empty(t *testing.T) {
	assert.True(t, TodoPatch{}.Empty())
	assert.False(t, TodoPatch{Complete: ptr(false)}.Empty())
}

func TestTodoProperties_CoverColumns(t *testing.T) {
	for _, col := range TodoColumns {
		p, ok := LookupProperty(col)
		assert.True(t, ok, "column %q has no documented property", col)
		assert.NotEmpty(t, p.Description)
	}

	_, ok := LookupProperty("deleted")
	assert.False(t, ok)
}
