package store

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/erazemk/inventar/internal/db"
	"github.com/erazemk/inventar/internal/inventory"
)

func mustFields(t *testing.T, in inventory.ItemInput) inventory.ItemFields {
	t.Helper()
	f, err := in.Validate(time.Now())
	if err != nil {
		t.Fatalf("validating input: %v", err)
	}
	return f
}

func createTestItem(t *testing.T, database *sql.DB, code, name string, mutate func(*inventory.ItemInput)) int64 {
	t.Helper()
	in := inventory.ItemInput{
		ItemCode:          code,
		Name:              name,
		Quantity:          "1",
		DateOfProcurement: "2024-01-15",
	}
	if mutate != nil {
		mutate(&in)
	}
	item, err := CreateItem(context.Background(), database, mustFields(t, in))
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", code, err)
	}
	return item.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	f := mustFields(t, inventory.ItemInput{
		ItemCode:          "A-100",
		Name:              "Laptop",
		Category:          "Electronics",
		Quantity:          "5",
		Location:          "Pisarna 2",
		DateOfProcurement: "2024-01-15",
		Notes:             "Dell XPS 15",
	})

	item, err := CreateItem(ctx, database, f)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected assigned id")
	}
	if item.DisposalStatus != "Active" {
		t.Errorf("expected default status 'Active', got %q", item.DisposalStatus)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.ItemCode != "A-100" || got.Name != "Laptop" || got.Quantity != 5 {
		t.Errorf("unexpected round-trip record: %+v", got)
	}
	if got.Category != "Electronics" || got.Location != "Pisarna 2" || got.Notes != "Dell XPS 15" {
		t.Errorf("unexpected optional fields: %+v", got)
	}
	if got.DateOfProcurement.String() != "2024-01-15" {
		t.Errorf("expected date 2024-01-15, got %s", got.DateOfProcurement)
	}
}

func TestGetItemNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := GetItem(context.Background(), database, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateItemDuplicateCode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestItem(t, database, "DUP-1", "First", nil)

	_, err := CreateItem(ctx, database, mustFields(t, inventory.ItemInput{
		ItemCode:          "DUP-1",
		Name:              "Second",
		DateOfProcurement: "2024-02-01",
	}))
	if !errors.Is(err, ErrCodeConflict) {
		t.Fatalf("expected ErrCodeConflict, got %v", err)
	}

	// The losing insert must not leave a partial write behind.
	items, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item after rejected duplicate, got %d", len(items))
	}
}

func TestCaseVariantCodesAreDistinct(t *testing.T) {
	database := db.NewTestDB(t)

	// The uniqueness constraint is case-sensitive.
	createTestItem(t, database, "ab-1", "Lower", nil)
	createTestItem(t, database, "AB-1", "Upper", nil)

	items, _ := ListItems(context.Background(), database, ItemFilter{})
	if len(items) != 2 {
		t.Errorf("expected 2 items with case-variant codes, got %d", len(items))
	}
}

func TestListItemsTextSearch(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestItem(t, database, "LPT-001", "Prenosnik Dell", nil)
	createTestItem(t, database, "MON-001", "Monitor", nil)
	createTestItem(t, database, "KEY-001", "Tipkovnica", nil)

	// Case-insensitive substring over item_code or name.
	for query, want := range map[string]int{
		"lpt":     1, // matches item code
		"monitor": 1, // matches name
		"001":     3,
		"xyz":     0,
	} {
		items, err := ListItems(ctx, database, ItemFilter{Query: query})
		if err != nil {
			t.Fatalf("ListItems(%q): %v", query, err)
		}
		if len(items) != want {
			t.Errorf("query %q: expected %d items, got %d", query, want, len(items))
		}
	}
}

func TestListItemsCombinedFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestItem(t, database, "A-1", "Prenosnik", func(in *inventory.ItemInput) {
		in.Category = "Electronics"
		in.Location = "Skladišče"
	})
	createTestItem(t, database, "A-2", "Prenosnik", func(in *inventory.ItemInput) {
		in.Category = "Electronics"
		in.Location = "Pisarna"
	})
	createTestItem(t, database, "A-3", "Miza", func(in *inventory.ItemInput) {
		in.Category = "Furniture"
		in.Location = "Skladišče"
	})

	items, err := ListItems(ctx, database, ItemFilter{
		Query:    "prenosnik",
		Category: "Electronics",
		Location: "Skladišče",
	})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].ItemCode != "A-1" {
		t.Errorf("expected exactly item A-1, got %+v", items)
	}
}

func TestListItemsOrderedByUpdatedAt(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first := createTestItem(t, database, "ORD-1", "First", nil)
	createTestItem(t, database, "ORD-2", "Second", nil)

	// Touch the first item so it becomes the most recently updated.
	_, err := UpdateItem(ctx, database, first, mustFields(t, inventory.ItemInput{
		ItemCode:          "ORD-1",
		Name:              "First (edited)",
		DateOfProcurement: "2024-01-15",
	}))
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	items, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != first {
		t.Errorf("expected most recently updated item first, got %+v", items)
	}
}

func TestItemFacetsCoverFullTable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestItem(t, database, "F-1", "One", func(in *inventory.ItemInput) {
		in.Category = "Electronics"
		in.Location = "Pisarna"
	})
	createTestItem(t, database, "F-2", "Two", func(in *inventory.ItemInput) {
		in.Category = "Furniture"
		in.DisposalStatus = "Disposed"
	})
	createTestItem(t, database, "F-3", "Three", nil) // no category or location

	facets, err := ItemFacets(ctx, database)
	if err != nil {
		t.Fatalf("ItemFacets: %v", err)
	}

	if !slices.Equal(facets.Categories, []string{"Electronics", "Furniture"}) {
		t.Errorf("unexpected categories: %v", facets.Categories)
	}
	if !slices.Equal(facets.Locations, []string{"Pisarna"}) {
		t.Errorf("unexpected locations: %v", facets.Locations)
	}
	if !slices.Equal(facets.Statuses, []string{"Active", "Disposed"}) {
		t.Errorf("unexpected statuses: %v", facets.Statuses)
	}
}

func TestItemFacetsEmptyStore(t *testing.T) {
	database := db.NewTestDB(t)

	facets, err := ItemFacets(context.Background(), database)
	if err != nil {
		t.Fatalf("ItemFacets: %v", err)
	}
	if len(facets.Categories) != 0 || len(facets.Locations) != 0 || len(facets.Statuses) != 0 {
		t.Errorf("expected empty facets, got %+v", facets)
	}
}

func TestUpdateItemReplacesAllFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id := createTestItem(t, database, "U-1", "Before", func(in *inventory.ItemInput) {
		in.Category = "Electronics"
		in.Notes = "old notes"
	})

	updated, err := UpdateItem(ctx, database, id, mustFields(t, inventory.ItemInput{
		ItemCode:          "U-1b",
		Name:              "After",
		Quantity:          "9",
		DateOfProcurement: "2023-05-01",
		DisposalStatus:    "Disposed",
	}))
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if updated.ItemCode != "U-1b" || updated.Name != "After" || updated.Quantity != 9 {
		t.Errorf("unexpected updated record: %+v", updated)
	}
	// Blank optionals overwrite previous values (replace, not patch).
	if updated.Category != "" || updated.Notes != "" {
		t.Errorf("expected optional fields cleared, got %+v", updated)
	}
	if updated.DisposalStatus != "Disposed" {
		t.Errorf("expected status 'Disposed', got %q", updated.DisposalStatus)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("expected updated_at to advance past created_at")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := UpdateItem(context.Background(), database, 99, mustFields(t, inventory.ItemInput{
		ItemCode:          "X-1",
		Name:              "Ghost",
		DateOfProcurement: "2024-01-01",
	}))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateItemCodeConflict(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	createTestItem(t, database, "C-1", "One", nil)
	second := createTestItem(t, database, "C-2", "Two", nil)

	_, err := UpdateItem(ctx, database, second, mustFields(t, inventory.ItemInput{
		ItemCode:          "C-1",
		Name:              "Two",
		DateOfProcurement: "2024-01-15",
	}))
	if !errors.Is(err, ErrCodeConflict) {
		t.Fatalf("expected ErrCodeConflict, got %v", err)
	}

	// The losing update must not have partially applied.
	got, _ := GetItem(ctx, database, second)
	if got.ItemCode != "C-2" {
		t.Errorf("expected item code unchanged after conflict, got %q", got.ItemCode)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id := createTestItem(t, database, "D-1", "Delete Me", nil)

	if err := DeleteItem(ctx, database, id); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	// Hard delete: the record is gone.
	if _, err := GetItem(ctx, database, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := DeleteItem(ctx, database, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestItemPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	id := createTestItem(t, database, "P-1", "Photo Item", nil)

	if err := SetItemPhoto(ctx, database, id, []byte("fake photo data"), "image/jpeg"); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := GetItemPhoto(ctx, database, id)
	if err != nil {
		t.Fatalf("GetItemPhoto: %v", err)
	}
	if string(data) != "fake photo data" {
		t.Errorf("expected photo data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	if err := SetItemPhoto(ctx, database, 99, nil, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown item, got %v", err)
	}
}
