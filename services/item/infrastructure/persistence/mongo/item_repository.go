package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghuser/itemstack/pkg/database"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
	"github.com/ghuser/itemstack/services/item/domain/models"
)

// CollectionName is the MongoDB collection holding item documents.
const CollectionName = "items"

// itemDocument is the stored shape of an Item.
type itemDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ItemRepository implements repositories.ItemRepository against MongoDB.
type ItemRepository struct {
	store *database.Store
}

// NewItemRepository returns an ItemRepository reading the collection through store.
// The collection handle is resolved per call so requests made before the store
// connects fail with database.ErrNotConnected.
func NewItemRepository(store *database.Store) *ItemRepository {
	return &ItemRepository{store: store}
}

func (r *ItemRepository) collection() (*mongo.Collection, error) {
	db, err := r.store.Mongo()
	if err != nil {
		return nil, err
	}
	return db.Collection(CollectionName), nil
}

// List returns all items sorted by createdAt descending.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*models.Item, len(docs))
	for i := range docs {
		items[i] = docToItem(docs[i])
	}
	return items, nil
}

// GetByID retrieves an Item by its hex ObjectID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return docToItem(doc), nil
}

// Create inserts item with a fresh ObjectID and writes the ID back onto item.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	doc := itemDocument{
		ID:        primitive.NewObjectID(),
		Name:      item.Name.String(),
		CreatedAt: item.CreatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = doc.ID.Hex()
	return nil
}

// UpdateName sets the name and returns the document as stored after the update.
func (r *ItemRepository) UpdateName(ctx context.Context, id string, name models.ItemName) (*models.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name.String()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return docToItem(doc), nil
}

// Delete removes the item. Returns ErrItemNotFound when nothing was deleted.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	coll, err := r.collection()
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemID, id)
	}
	return oid, nil
}

// docToItem maps a stored document to a domain models.Item.
func docToItem(doc itemDocument) *models.Item {
	return &models.Item{
		ID:        doc.ID.Hex(),
		Name:      models.ItemName(doc.Name),
		CreatedAt: doc.CreatedAt.UTC(),
	}
}
