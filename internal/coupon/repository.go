package coupon

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository looks up coupon codes.
type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
}

type mongoRepository struct {
	coupons *mongo.Collection
}

// NewMongoRepository returns a Repository backed by the coupons collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coupons: db.Collection("coupons")}
}

func (r *mongoRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var coupon Coupon
	err := r.coupons.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select coupon %s: %w", code, err)
	}
	return &coupon, nil
}

// Seed upserts the store's standing discount codes so a fresh database can
// serve them immediately.
func Seed(ctx context.Context, db *mongo.Database) error {
	coupons := db.Collection("coupons")
	seed := []Coupon{
		{Code: "first10", Percent: 10, Active: true},
		{Code: "welcome15", Percent: 15, Active: true},
		{Code: "save20", Percent: 20, Active: true},
		{Code: "aqua25", Percent: 25, Active: true},
	}

	for _, c := range seed {
		filter := bson.M{"code": c.Code}
		update := bson.M{"$setOnInsert": c}
		opts := options.Update().SetUpsert(true)
		if _, err := coupons.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("repository: failed to seed coupon %s: %w", c.Code, err)
		}
	}
	return nil
}
