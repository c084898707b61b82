// Package todos provides SQL-backed repositories for todo persistence.
// PostgreSQL and SQLite share one implementation that differs only in
// placeholder syntax.
package todos

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

// Filter narrows Find. A zero Filter matches every todo.
type Filter struct {
	// TitlePrefix keeps todos whose title starts with it, ignoring case.
	TitlePrefix string
}

type Repository interface {
	// Save inserts todo when its ID is zero and updates it otherwise.
	Save(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Find(ctx context.Context, filter Filter) ([]*models.Todo, error)
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern turns a title prefix into a lower-cased LIKE pattern in
// which the prefix itself matches literally.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(strings.ToLower(prefix)) + "%"
}
