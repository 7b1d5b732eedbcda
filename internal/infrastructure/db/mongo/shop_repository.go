package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickit/print-system/internal/core/domain"
)

const collectionShops = "shops"

type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, shop)
	return err
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var shop domain.Shop
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": shop.ID}, shop)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}
