package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/prepgen/core/qa"
	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
	loadSql "github.com/siherrmann/prepgen/sql"
)

// ItemsDBHandlerFunctions defines the interface for Items database operations.
type ItemsDBHandlerFunctions interface {
	InsertItem(item *model.Item) error
	SelectItem(rid uuid.UUID) (*model.Item, error)
	SelectItemsByKindAndSubject(kind model.ItemKind, subject string, limit int) ([]*model.Item, error)
	CountItems(kind model.ItemKind, subject string) (int, error)
	ApproveItem(rid uuid.UUID) error
	DeleteItem(rid uuid.UUID) error
}

// ItemsDBHandler handles content bank database operations.
// It is the persistent store behind batch generation runs.
type ItemsDBHandler struct {
	db *helper.Database
}

// The items handler is the content bank behind the QA engine.
var _ qa.Bank = (*ItemsDBHandler)(nil)

// NewItemsDBHandler creates a new items database handler.
// It initializes the database connection and loads item-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewItemsDBHandler(db *helper.Database, force bool) (*ItemsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	itemsDbHandler := &ItemsDBHandler{
		db: db,
	}

	err := loadSql.LoadItemsSql(itemsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load items sql", err)
	}

	err = itemsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ItemsDBHandler")

	return itemsDbHandler, nil
}

// CreateTable creates the 'items' table in the database.
// If the table already exists, it does not create it again.
func (h *ItemsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_items();`)
	if err != nil {
		log.Panicf("error initializing items table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table items")

	return nil
}

// scanItem reads one full item row
func scanItem(row interface{ Scan(dest ...any) error }, item *model.Item) error {
	return row.Scan(
		&item.ID,
		&item.RID,
		&item.Kind,
		&item.Subject,
		&item.Question,
		pq.Array(&item.Options),
		&item.CorrectAnswer,
		&item.Explanation,
		&item.CardType,
		&item.FrontContent,
		&item.BackContent,
		&item.Hint,
		&item.Source,
		&item.Grade,
		&item.Feedback,
		&item.TextbookAnswer,
		&item.Approved,
		&item.CreatedAt,
	)
}

// InsertItem inserts a new content item
func (h *ItemsDBHandler) InsertItem(item *model.Item) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_item($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		item.Kind,
		item.Subject,
		item.Question,
		pq.Array(item.Options),
		item.CorrectAnswer,
		item.Explanation,
		item.CardType,
		item.FrontContent,
		item.BackContent,
		item.Hint,
		item.Source,
		item.Grade,
		item.Feedback,
		item.TextbookAnswer,
		item.Approved,
	)

	err := scanItem(row, item)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectItem retrieves an item by RID
func (h *ItemsDBHandler) SelectItem(rid uuid.UUID) (*model.Item, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_item($1)`,
		rid,
	)

	item := &model.Item{}
	err := scanItem(row, item)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return item, nil
}

// SelectItemsByKindAndSubject retrieves items of one kind and subject,
// newest first. A limit of 0 returns all matching items.
func (h *ItemsDBHandler) SelectItemsByKindAndSubject(kind model.ItemKind, subject string, limit int) ([]*model.Item, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_items_by_kind_subject($1, $2, $3)`,
		kind,
		subject,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		item := &model.Item{}
		err := scanItem(rows, item)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return items, nil
}

// CountItems counts items of one kind and subject
func (h *ItemsDBHandler) CountItems(kind model.ItemKind, subject string) (int, error) {
	var count int
	err := h.db.Instance.QueryRow(
		`SELECT count_items_by_kind_subject($1, $2)`,
		kind,
		subject,
	).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// ApproveItem marks an item as approved
func (h *ItemsDBHandler) ApproveItem(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT approve_item($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteItem deletes an item by RID
func (h *ItemsDBHandler) DeleteItem(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_item($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// ListExisting returns the existing items of one kind and subject for
// duplicate comparison in batch generation runs
func (h *ItemsDBHandler) ListExisting(_ context.Context, kind model.ItemKind, subject string) ([]*model.Item, error) {
	return h.SelectItemsByKindAndSubject(kind, subject, 0)
}

// Add persists an accepted item to the bank
func (h *ItemsDBHandler) Add(_ context.Context, item *model.Item) error {
	return h.InsertItem(item)
}
