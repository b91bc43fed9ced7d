package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a product or category does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Repository is the read side of the product catalog.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	NewProducts(ctx context.Context, limit int64) ([]Product, error)
	SearchProducts(ctx context.Context, term string) ([]Product, error)
}

type mongoRepository struct {
	categories *mongo.Collection
	products   *mongo.Collection
}

// NewMongoRepository returns a Repository backed by the categories and
// products collections of the given database.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		categories: db.Collection("categories"),
		products:   db.Collection("products"),
	}
}

func (r *mongoRepository) ListCategories(ctx context.Context) ([]Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query categories: %w", err)
	}

	categories := make([]Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("repository: failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *mongoRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select category %s: %w", id, err)
	}
	return &category, nil
}

func (r *mongoRepository) ListProducts(ctx context.Context) ([]Product, error) {
	return r.findProducts(ctx, bson.M{}, nil)
}

func (r *mongoRepository) ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return r.findProducts(ctx, bson.M{"categoryId": categoryID}, nil)
}

func (r *mongoRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product %s: %w", id, err)
	}
	return &product, nil
}

func (r *mongoRepository) NewProducts(ctx context.Context, limit int64) ([]Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.findProducts(ctx, bson.M{"isNew": true}, opts)
}

func (r *mongoRepository) SearchProducts(ctx context.Context, term string) ([]Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"description": pattern},
		{"category": pattern},
	}}
	return r.findProducts(ctx, filter, nil)
}

func (r *mongoRepository) findProducts(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Product, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.products.Find(ctx, filter, opts)
	} else {
		cursor, err = r.products.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("repository: failed to decode products: %w", err)
	}
	return products, nil
}
