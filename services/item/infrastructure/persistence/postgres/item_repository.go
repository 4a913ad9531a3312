package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/itemstack/pkg/database"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
	"github.com/ghuser/itemstack/services/item/domain/models"
)

const (
	listItemsSQL  = `SELECT id::text, name, created_at FROM items ORDER BY created_at DESC`
	getItemSQL    = `SELECT id::text, name, created_at FROM items WHERE id = $1::uuid`
	insertItemSQL = `INSERT INTO items (id, name, created_at) VALUES ($1::uuid, $2, $3)`
	updateItemSQL = `UPDATE items SET name = $2 WHERE id = $1::uuid RETURNING id::text, name, created_at`
	deleteItemSQL = `DELETE FROM items WHERE id = $1::uuid`
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// The schema lives in migrations/item.
type ItemRepository struct {
	store *database.Store
}

// NewItemRepository returns an ItemRepository using the pool held by store.
func NewItemRepository(store *database.Store) *ItemRepository {
	return &ItemRepository{store: store}
}

// List returns all items, newest first.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	pool, err := r.store.Postgres()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	pool, err := r.store.Postgres()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(pool.QueryRow(ctx, getItemSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// Create inserts item under a new random UUID and writes the ID back onto item.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	pool, err := r.store.Postgres()
	if err != nil {
		return err
	}

	id := uuid.New().String()
	if _, err := pool.Exec(ctx, insertItemSQL, id, item.Name.String(), item.CreatedAt); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = id
	return nil
}

// UpdateName persists a name change and returns the updated row.
func (r *ItemRepository) UpdateName(ctx context.Context, id string, name models.ItemName) (*models.Item, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	pool, err := r.store.Postgres()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(pool.QueryRow(ctx, updateItemSQL, id, name.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item by ID. Returns ErrItemNotFound when no row matched.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	pool, err := r.store.Postgres()
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, deleteItemSQL, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, id)
	}
	return nil
}

// scanItem maps an (id, name, created_at) row to a domain models.Item.
func scanItem(row pgx.Row) (*models.Item, error) {
	var (
		item models.Item
		name string
	)
	if err := row.Scan(&item.ID, &name, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Name = models.ItemName(name)
	item.CreatedAt = item.CreatedAt.UTC()
	return &item, nil
}
