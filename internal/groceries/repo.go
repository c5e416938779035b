package groceries

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding grocery list aggregates.
const CollectionName = "grocery_lists"

var (
	// ErrListNotFound means no list document matched the id.
	ErrListNotFound = errors.New("grocery list not found")
	// ErrProductNotFound means the list exists but holds no product with the id.
	ErrProductNotFound = errors.New("product not found in list")
)

// Repository persists grocery list aggregates. Every product mutation is a
// single conditional update targeted at the embedded element, so concurrent
// writers cannot lose each other's updates.
type Repository interface {
	Insert(ctx context.Context, list GroceryList) (GroceryList, error)
	FindAll(ctx context.Context) ([]GroceryList, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (GroceryList, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, name, description string) (GroceryList, error)
	Delete(ctx context.Context, id primitive.ObjectID) (GroceryList, error)
	PushProduct(ctx context.Context, id primitive.ObjectID, product Product) (GroceryList, error)
	PullProduct(ctx context.Context, id, productID primitive.ObjectID) (Product, error)
	PatchProduct(ctx context.Context, id, productID primitive.ObjectID, patch ProductPatch) (Product, error)
}

type mongoRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewRepository builds the Mongo-backed repository.
func NewRepository(collection *mongo.Collection) Repository {
	return &mongoRepository{
		collection: collection,
		now:        time.Now,
	}
}

func (r *mongoRepository) Insert(ctx context.Context, list GroceryList) (GroceryList, error) {
	now := r.now().UTC()
	list.ID = primitive.NewObjectID()
	list.CreatedAt = now
	list.UpdatedAt = now
	if list.Products == nil {
		list.Products = []Product{}
	}
	if _, err := r.collection.InsertOne(ctx, list); err != nil {
		return GroceryList{}, err
	}
	return list, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]GroceryList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	lists := []GroceryList{}
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	for i := range lists {
		lists[i] = normalized(lists[i])
	}
	return lists, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (GroceryList, error) {
	var list GroceryList
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GroceryList{}, ErrListNotFound
		}
		return GroceryList{}, err
	}
	return normalized(list), nil
}

func (r *mongoRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, name, description string) (GroceryList, error) {
	update := bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"updatedAt":   r.now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var list GroceryList
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GroceryList{}, ErrListNotFound
		}
		return GroceryList{}, err
	}
	return normalized(list), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (GroceryList, error) {
	var list GroceryList
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GroceryList{}, ErrListNotFound
		}
		return GroceryList{}, err
	}
	return normalized(list), nil
}

func (r *mongoRepository) PushProduct(ctx context.Context, id primitive.ObjectID, product Product) (GroceryList, error) {
	update := bson.M{
		"$push": bson.M{"products": product},
		"$set":  bson.M{"updatedAt": r.now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var list GroceryList
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return GroceryList{}, ErrListNotFound
		}
		return GroceryList{}, err
	}
	return normalized(list), nil
}

func (r *mongoRepository) PullProduct(ctx context.Context, id, productID primitive.ObjectID) (Product, error) {
	filter := bson.M{"_id": id, "products._id": productID}
	update := bson.M{
		"$pull": bson.M{"products": bson.M{"_id": productID}},
		"$set":  bson.M{"updatedAt": r.now().UTC()},
	}
	// Return the document before the pull so the removed entry survives.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prior GroceryList
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prior)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, r.classifyMiss(ctx, id)
		}
		return Product{}, err
	}

	product, ok := prior.ProductByID(productID)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return product, nil
}

func (r *mongoRepository) PatchProduct(ctx context.Context, id, productID primitive.ObjectID, patch ProductPatch) (Product, error) {
	filter := bson.M{"_id": id, "products._id": productID}

	if patch.Empty() {
		// Nothing mutable supplied; report the current state of the entry.
		var list GroceryList
		if err := r.collection.FindOne(ctx, filter).Decode(&list); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return Product{}, r.classifyMiss(ctx, id)
			}
			return Product{}, err
		}
		product, ok := list.ProductByID(productID)
		if !ok {
			return Product{}, ErrProductNotFound
		}
		return product, nil
	}

	set := bson.M{"updatedAt": r.now().UTC()}
	if patch.Price != nil {
		set["products.$.price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		set["products.$.image_url"] = *patch.ImageURL
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var list GroceryList
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, r.classifyMiss(ctx, id)
		}
		return Product{}, err
	}

	product, ok := list.ProductByID(productID)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return product, nil
}

// classifyMiss disambiguates a compound-filter miss: either the list itself
// is gone, or the list exists and the product id matched nothing.
func (r *mongoRepository) classifyMiss(ctx context.Context, id primitive.ObjectID) error {
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrListNotFound
		}
		return err
	}
	return ErrProductNotFound
}

func normalized(list GroceryList) GroceryList {
	if list.Products == nil {
		list.Products = []Product{}
	}
	return list
}
