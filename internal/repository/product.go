package repository

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/product"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/mongodb"
	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type productRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

func NewProductRepository(client *mongodb.Client, logger *logger.Logger) product.Repository {
	return &productRepository{
		coll:   client.Collection(mongodb.CollectionProducts),
		logger: logger,
	}
}

type productDocument struct {
	ID         string          `bson:"_id"`
	OwnerID    string          `bson:"owner_id"`
	Name       string          `bson:"name"`
	Price      bson.Decimal128 `bson:"price"`
	GSTPercent bson.Decimal128 `bson:"gst"`
	HSNCode    *string         `bson:"hsn_code,omitempty"`
	Category   *string         `bson:"category,omitempty"`
	CreatedAt  time.Time       `bson:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}

func toProductDocument(p *product.Product) *productDocument {
	return &productDocument{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Name:       p.Name,
		Price:      toDecimal128(p.Price),
		GSTPercent: toDecimal128(p.GSTPercent),
		HSNCode:    p.HSNCode,
		Category:   p.Category,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func fromProductDocument(d *productDocument) *product.Product {
	return &product.Product{
		ID:         d.ID,
		Name:       d.Name,
		Price:      fromDecimal128(d.Price),
		GSTPercent: fromDecimal128(d.GSTPercent),
		HSNCode:    d.HSNCode,
		Category:   d.Category,
		BaseModel: types.BaseModel{
			OwnerID:   d.OwnerID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// toDecimal128 converts a decimal to its exact bson representation so the
// database can aggregate monetary values without float drift
func toDecimal128(d decimal.Decimal) bson.Decimal128 {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}
	}
	return v
}

func fromDecimal128(v bson.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	if _, err := r.coll.InsertOne(ctx, toProductDocument(p)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, ownedByID(ctx, id)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("product not found").
				WithHint("Product not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	return fromProductDocument(&doc), nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, ownedByID(ctx, p.ID), toProductDocument(p))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("product not found").
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedByID(ctx, id))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("product not found").
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, search string) ([]*product.Product, error) {
	filter := ownedBy(ctx)
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var products []*product.Product
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode product").
				Mark(ierr.ErrDatabase)
		}
		products = append(products, fromProductDocument(&doc))
	}
	return products, cursor.Err()
}
