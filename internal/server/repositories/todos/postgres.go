package todos

import (
	"strconv"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
)

var postgresQueries = newQueries(func(n int) string { return "$" + strconv.Itoa(n) }, "lower")

// PostgresRepository implements todo storage over PostgreSQL.
type PostgresRepository struct {
	sqlRepository
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries}}
}
