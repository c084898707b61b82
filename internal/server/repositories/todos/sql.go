package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

type queries struct {
	insert         string
	update         string
	selectAll      string
	selectByPrefix string
	selectByID     string
	delete         string
}

// newQueries renders the statements for a dialect; ph returns the n-th
// (1-based) bind placeholder and lower names the SQL function that folds
// title case for the prefix filter.
func newQueries(ph func(n int) string, lower string) queries {
	cols := strings.Join(models.TodoColumns, ", ")
	table := models.TodoTable

	return queries{
		insert: fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (%s, %s, %s) RETURNING %s`,
			table, models.ColumnTitle, models.ColumnDescription, models.ColumnComplete,
			ph(1), ph(2), ph(3), models.ColumnID),
		update: fmt.Sprintf(`UPDATE %s SET %s = %s, %s = %s, %s = %s WHERE %s = %s`,
			table, models.ColumnTitle, ph(1), models.ColumnDescription, ph(2), models.ColumnComplete, ph(3),
			models.ColumnID, ph(4)),
		selectAll: fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, cols, table, models.ColumnID),
		selectByPrefix: fmt.Sprintf(`SELECT %s FROM %s WHERE %s(%s) LIKE %s ESCAPE '\' ORDER BY %s`,
			cols, table, lower, models.ColumnTitle, ph(1), models.ColumnID),
		selectByID: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = %s`, cols, table, models.ColumnID, ph(1)),
		delete:     fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, table, models.ColumnID, ph(1)),
	}
}

// sqlRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type sqlRepository struct {
	db dbx.DBTX
	q  queries
}

func (r *sqlRepository) Save(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == 0 {
		return r.insert(ctx, todo)
	}
	return r.update(ctx, todo)
}

func (r *sqlRepository) insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	saved := *todo

	err := r.db.QueryRowContext(ctx, r.q.insert, todo.Title, todo.Description, todo.Complete).Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("error inserting todo: %w", err)
	}

	return &saved, nil
}

func (r *sqlRepository) update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	res, err := r.db.ExecContext(ctx, r.q.update, todo.Title, todo.Description, todo.Complete, todo.ID)
	if err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		saved := *todo
		return &saved, nil
	case 0:
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *sqlRepository) Find(ctx context.Context, filter Filter) ([]*models.Todo, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter.TitlePrefix == "" {
		rows, err = r.db.QueryContext(ctx, r.q.selectAll)
	} else {
		rows, err = r.db.QueryContext(ctx, r.q.selectByPrefix, prefixPattern(filter.TitlePrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Complete); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *sqlRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	todo := &models.Todo{}

	err := r.db.QueryRowContext(ctx, r.q.selectByID, id).
		Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Complete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return todo, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, id); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}
	return nil
}
