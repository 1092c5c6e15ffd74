// Package books reads the two row sets shown to a courier: books nobody has
// taken yet and books the courier is currently handling.
//
// # Usage
//
//	repo := books.NewRepository(conn)
//	free, err := repo.QueryUnassigned(ctx)
//	mine, err := repo.QueryAssigned(ctx, courierID)
package books

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/entities"
)

// Repository issues the read-only task queries. Every call opens and
// closes its own connection.
type Repository struct {
	conn *database.Connector
}

// NewRepository creates a new books repository.
func NewRepository(conn *database.Connector) *Repository {
	return &Repository{conn: conn}
}

// taskRow mirrors the column aliases produced by taskQuery.
type taskRow struct {
	Kind           string
	PurchasingDate string
	ISBN           string `gorm:"column:isbn"`
	CustomerID     uint
	Address        string
	Title          string
	CustomerName   string
	CustomerPhone  string
	Comment        *string
}

// source describes one side of the union.
type source struct {
	kind        entities.TaskKind
	taskTable   string
	linkTable   string
	addressExpr string
}

var sources = []source{
	{entities.TaskKindReceive, "book_to_receive", "receiving", "b.address"},
	{entities.TaskKindDeliver, "book_to_deliver", "delivery", "b.address_to"},
}

// taskQuery builds the union over receive and deliver tasks. Unassigned
// rows have no link row at all; assigned rows must be linked to the courier
// and not yet completed, and carry the stored comment.
func taskQuery(assigned bool, courierID uint) (string, []any) {
	var (
		parts []string
		args  []any
	)

	for _, src := range sources {
		cols := fmt.Sprintf("'%s' AS kind, b.purchasing_date, b.isbn, b.customer_id, %s AS address",
			src.kind, src.addressExpr)
		join := "LEFT JOIN"
		where := "d.courier_id IS NULL"
		if assigned {
			cols += ", b.commnt AS comment"
			join = "JOIN"
			where = "d.courier_id = ? AND d.completed_at IS NULL"
			args = append(args, courierID)
		}

		parts = append(parts, fmt.Sprintf(
			"SELECT %s FROM %s b %s %s d ON b.purchasing_date = d.purchasing_date"+
				" AND b.isbn = d.isbn AND b.customer_id = d.customer_id WHERE %s",
			cols, src.taskTable, join, src.linkTable, where))
	}

	outer := "h.kind, h.purchasing_date, h.customer_id, h.isbn, h.address," +
		" book.title, c.name AS customer_name, c.phone AS customer_phone"
	if assigned {
		outer += ", h.comment"
	}

	query := "SELECT " + outer +
		" FROM (" + strings.Join(parts, " UNION ALL ") + ") h" +
		" JOIN book ON book.isbn = h.isbn" +
		" JOIN customer c ON c.customer_id = h.customer_id" +
		" ORDER BY h.purchasing_date, h.isbn, h.customer_id, h.kind"

	return query, args
}

func (r *Repository) query(ctx context.Context, assigned bool, courierID uint) ([]entities.BookTask, error) {
	query, args := taskQuery(assigned, courierID)

	var rows []taskRow
	err := r.conn.Do(ctx, func(db *gorm.DB) error {
		return db.Raw(query, args...).Scan(&rows).Error
	})
	if err != nil {
		return []entities.BookTask{}, err
	}

	tasks := make([]entities.BookTask, 0, len(rows))
	for _, row := range rows {
		task := entities.BookTask{
			Kind:           entities.TaskKind(row.Kind),
			PurchasingDate: row.PurchasingDate,
			ISBN:           row.ISBN,
			CustomerID:     row.CustomerID,
			Address:        row.Address,
			Title:          row.Title,
			CustomerName:   row.CustomerName,
			CustomerPhone:  row.CustomerPhone,
		}
		if assigned {
			comment := ""
			if row.Comment != nil {
				comment = *row.Comment
			}
			task.Comment = &comment
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// QueryUnassigned returns every receive or deliver task no courier has claimed.
// On failure the result is empty, never partial.
func (r *Repository) QueryUnassigned(ctx context.Context) ([]entities.BookTask, error) {
	return r.query(ctx, false, 0)
}

// QueryAssigned returns the open tasks claimed by courierID, with comments.
func (r *Repository) QueryAssigned(ctx context.Context, courierID uint) ([]entities.BookTask, error) {
	return r.query(ctx, true, courierID)
}
