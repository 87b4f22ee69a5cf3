package repository

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/customer"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/mongodb"
	"github.com/billora/billora/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type customerRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

func NewCustomerRepository(client *mongodb.Client, logger *logger.Logger) customer.Repository {
	return &customerRepository{
		coll:   client.Collection(mongodb.CollectionCustomers),
		logger: logger,
	}
}

type customerDocument struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Name      string    `bson:"name"`
	Email     *string   `bson:"email,omitempty"`
	Phone     *string   `bson:"phone,omitempty"`
	Address   *string   `bson:"address,omitempty"`
	GSTIN     *string   `bson:"gstin,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toCustomerDocument(c *customer.Customer) *customerDocument {
	return &customerDocument{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		GSTIN:     c.GSTIN,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerDocument(d *customerDocument) *customer.Customer {
	return &customer.Customer{
		ID:      d.ID,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Address: d.Address,
		GSTIN:   d.GSTIN,
		BaseModel: types.BaseModel{
			OwnerID:   d.OwnerID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if _, err := r.coll.InsertOne(ctx, toCustomerDocument(c)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var doc customerDocument
	err := r.coll.FindOne(ctx, ownedByID(ctx, id)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("customer not found").
				WithHint("Customer not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return fromCustomerDocument(&doc), nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, ownedByID(ctx, c.ID), toCustomerDocument(c))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("customer not found").
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedByID(ctx, id))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("customer not found").
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, search string) ([]*customer.Customer, error) {
	filter := ownedBy(ctx)
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var customers []*customer.Customer
	for cursor.Next(ctx) {
		var doc customerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode customer").
				Mark(ierr.ErrDatabase)
		}
		customers = append(customers, fromCustomerDocument(&doc))
	}
	return customers, cursor.Err()
}
