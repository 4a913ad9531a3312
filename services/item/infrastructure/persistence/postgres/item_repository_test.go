package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ghuser/itemstack/migrations/item"
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/logger"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
	"github.com/ghuser/itemstack/services/item/domain/models"
)

func TestValidateID(t *testing.T) {
	if err := validateID("0b7c9a52-6a41-4d1b-9f3e-8c1a2b3c4d5e"); err != nil {
		t.Errorf("valid UUID rejected: %v", err)
	}
	if err := validateID("507f1f77bcf86cd799439011"); !errors.Is(err, itemdomain.ErrInvalidItemID) {
		t.Errorf("got %v, want ErrInvalidItemID", err)
	}
}

// Integration tests: skipped unless POSTGRES_URL is set.
func TestPostgresIntegration(t *testing.T) {
	pgURL := os.Getenv("POSTGRES_URL")
	if pgURL == "" {
		t.Skip("POSTGRES_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	if err := item.Migrate(pgURL, logger.Discard()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	target, err := database.ParseTarget(pgURL)
	if err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	store := database.New(target, logger.Discard())
	if err := store.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer store.Close(ctx) //nolint:errcheck

	pool, _ := store.Postgres()
	if _, err := pool.Exec(ctx, "TRUNCATE items"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	repo := NewItemRepository(store)

	milk := models.NewItem("milk")
	if err := repo.Create(ctx, milk); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, milk.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "milk" || !got.CreatedAt.Equal(milk.CreatedAt) {
			t.Errorf("got %+v, want %+v", got, milk)
		}
	})

	t.Run("UpdateName", func(t *testing.T) {
		got, err := repo.UpdateName(ctx, milk.ID, "oat milk")
		if err != nil {
			t.Fatalf("UpdateName: %v", err)
		}
		if got.Name != "oat milk" {
			t.Errorf("Name = %q", got.Name)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, milk.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, milk.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Errorf("GetByID after delete: got %v", err)
		}
	})
}
