package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/inventar/internal/inventory"
	"github.com/erazemk/inventar/internal/model"
)

const itemColumns = `id, item_code, name, category, quantity, location,
	date_of_procurement, disposal_status, notes, photo_mime, created_at, updated_at`

// ItemFilter narrows a listing. Zero values impose no restriction.
type ItemFilter struct {
	Query    string // case-insensitive substring of item_code or name
	Category string
	Location string
	Status   string
}

// Facets are the distinct non-empty filter values present across all
// items, regardless of any active filter, each list sorted.
type Facets struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Statuses   []string `json:"statuses"`
}

// CreateItem inserts a validated item and returns the stored record.
// Returns ErrCodeConflict when the item code is already taken.
func CreateItem(ctx context.Context, db *sql.DB, f inventory.ItemFields) (*model.Item, error) {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (item_code, name, category, quantity, location,
		 date_of_procurement, disposal_status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ItemCode, f.Name, f.Category, f.Quantity, f.Location,
		f.DateOfProcurement, f.DisposalStatus, f.Notes, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeConflict
		}
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or ErrNotFound.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns the items matching the filter, most recently updated
// first. All supplied filters combine with AND.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`

	var conds []string
	var args []any

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		conds = append(conds, `(item_code LIKE ? OR name LIKE ?)`)
		args = append(args, like, like)
	}
	if filter.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, filter.Category)
	}
	if filter.Location != "" {
		conds = append(conds, `location = ?`)
		args = append(args, filter.Location)
	}
	if filter.Status != "" {
		conds = append(conds, `disposal_status = ?`)
		args = append(args, filter.Status)
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ItemFacets returns the distinct filter values over the full item table.
func ItemFacets(ctx context.Context, db *sql.DB) (*Facets, error) {
	facets := &Facets{}

	for _, col := range []struct {
		column string
		dest   *[]string
	}{
		{"category", &facets.Categories},
		{"location", &facets.Locations},
		{"disposal_status", &facets.Statuses},
	} {
		values, err := distinctValues(ctx, db, col.column)
		if err != nil {
			return nil, err
		}
		*col.dest = values
	}

	return facets, nil
}

// distinctValues returns the sorted distinct non-empty values of a column.
func distinctValues(ctx context.Context, db *sql.DB, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM items
		 WHERE `+column+` IS NOT NULL AND `+column+` != ''
		 ORDER BY `+column,
	)
	if err != nil {
		return nil, fmt.Errorf("listing distinct %s values: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s value: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// UpdateItem overwrites every field of an existing item and returns the
// stored record. Returns ErrNotFound for an unknown ID and ErrCodeConflict
// when the new item code collides with another item.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, f inventory.ItemFields) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET item_code = ?, name = ?, category = ?, quantity = ?,
		 location = ?, date_of_procurement = ?, disposal_status = ?, notes = ?,
		 updated_at = ? WHERE id = ?`,
		f.ItemCode, f.Name, f.Category, f.Quantity, f.Location,
		f.DateOfProcurement, f.DisposalStatus, f.Notes, time.Now().UTC(), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeConflict
		}
		return nil, fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return GetItem(ctx, db, id)
}

// DeleteItem removes an item. Returns ErrNotFound for an unknown ID.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetItemPhoto stores an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = ? WHERE id = ?`,
		photo, mime, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type. The data is nil
// when the item exists but has no photo.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

// scanItem reads one item row using the itemColumns order.
func scanItem(scan func(...any) error) (*model.Item, error) {
	item := &model.Item{}
	var category, location, notes, photoMime sql.NullString
	err := scan(
		&item.ID, &item.ItemCode, &item.Name, &category, &item.Quantity,
		&location, &item.DateOfProcurement, &item.DisposalStatus, &notes,
		&photoMime, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Category = category.String
	item.Location = location.String
	item.Notes = notes.String
	item.PhotoMime = photoMime.String
	return item, nil
}
