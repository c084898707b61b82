package todos

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"modernc.org/sqlite"
)

// sqliteLowerFunc folds case with Unicode rules; SQLite's built-in lower()
// only folds ASCII letters.
const sqliteLowerFunc = "todo_lower"

var sqliteQueries = newQueries(func(int) string { return "?" }, sqliteLowerFunc)

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, foldLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", sqliteLowerFunc, err))
	}
}

func foldLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", sqliteLowerFunc, v)
	}
}

// SQLiteRepository implements todo storage over SQLite.
type SQLiteRepository struct {
	sqlRepository
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries}}
}
