package persistence

import (
	"testing"

	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/services/item/infrastructure/persistence/memory"
	mongorepo "github.com/ghuser/itemstack/services/item/infrastructure/persistence/mongo"
	"github.com/ghuser/itemstack/services/item/infrastructure/persistence/postgres"
)

func TestNewItemRepository_SelectsByKind(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"mongodb://localhost:27017/items", "mongo"},
		{"postgres://localhost:5432/items", "postgres"},
		{"memory://", "memory"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			target, err := database.ParseTarget(tt.url)
			if err != nil {
				t.Fatalf("ParseTarget: %v", err)
			}
			repo := NewItemRepository(database.New(target, logger.Discard()))

			var ok bool
			switch tt.want {
			case "mongo":
				_, ok = repo.(*mongorepo.ItemRepository)
			case "postgres":
				_, ok = repo.(*postgres.ItemRepository)
			case "memory":
				_, ok = repo.(*memory.ItemRepository)
			}
			if !ok {
				t.Errorf("got %T for %s", repo, tt.url)
			}
		})
	}
}
