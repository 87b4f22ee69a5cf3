package repository

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/seller"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/mongodb"
	"github.com/billora/billora/internal/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type sellerRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

func NewSellerRepository(client *mongodb.Client, logger *logger.Logger) seller.Repository {
	return &sellerRepository{
		coll:   client.Collection(mongodb.CollectionSellers),
		logger: logger,
	}
}

type sellerDocument struct {
	ID            string    `bson:"_id"`
	OwnerID       string    `bson:"owner_id"`
	BusinessName  string    `bson:"business_name"`
	Address       *string   `bson:"address,omitempty"`
	City          *string   `bson:"city,omitempty"`
	State         *string   `bson:"state,omitempty"`
	Pincode       *string   `bson:"pincode,omitempty"`
	GSTIN         *string   `bson:"gstin,omitempty"`
	Phone         *string   `bson:"phone,omitempty"`
	Email         *string   `bson:"email,omitempty"`
	Logo          *string   `bson:"logo,omitempty"`
	BankName      *string   `bson:"bank_name,omitempty"`
	AccountNumber *string   `bson:"account_number,omitempty"`
	IFSCCode      *string   `bson:"ifsc_code,omitempty"`
	IsDefault     bool      `bson:"is_default"`
	CustomField   *string   `bson:"custom_field,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toSellerDocument(s *seller.Seller) *sellerDocument {
	return &sellerDocument{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		BusinessName:  s.BusinessName,
		Address:       s.Address,
		City:          s.City,
		State:         s.State,
		Pincode:       s.Pincode,
		GSTIN:         s.GSTIN,
		Phone:         s.Phone,
		Email:         s.Email,
		Logo:          s.Logo,
		BankName:      s.BankName,
		AccountNumber: s.AccountNumber,
		IFSCCode:      s.IFSCCode,
		IsDefault:     s.IsDefault,
		CustomField:   s.CustomField,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func fromSellerDocument(d *sellerDocument) *seller.Seller {
	return &seller.Seller{
		ID:            d.ID,
		BusinessName:  d.BusinessName,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		Pincode:       d.Pincode,
		GSTIN:         d.GSTIN,
		Phone:         d.Phone,
		Email:         d.Email,
		Logo:          d.Logo,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		IFSCCode:      d.IFSCCode,
		IsDefault:     d.IsDefault,
		CustomField:   d.CustomField,
		BaseModel: types.BaseModel{
			OwnerID:   d.OwnerID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func (r *sellerRepository) Create(ctx context.Context, s *seller.Seller) error {
	if _, err := r.coll.InsertOne(ctx, toSellerDocument(s)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create seller").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *sellerRepository) Get(ctx context.Context, id string) (*seller.Seller, error) {
	var doc sellerDocument
	err := r.coll.FindOne(ctx, ownedByID(ctx, id)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("seller not found").
				WithHint("Seller not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get seller").
			Mark(ierr.ErrDatabase)
	}
	return fromSellerDocument(&doc), nil
}

func (r *sellerRepository) Update(ctx context.Context, s *seller.Seller) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, ownedByID(ctx, s.ID), toSellerDocument(s))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update seller").
			Mark(ierr.ErrDatabase)
	}
	if res.MatchedCount == 0 {
		return ierr.NewError("seller not found").
			WithHint("Seller not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *sellerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedByID(ctx, id))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete seller").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("seller not found").
			WithHint("Seller not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *sellerRepository) List(ctx context.Context, search string) ([]*seller.Seller, error) {
	filter := ownedBy(ctx)
	if search != "" {
		filter["business_name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "created_at", Value: -1},
	}))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list sellers").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var sellers []*seller.Seller
	for cursor.Next(ctx) {
		var doc sellerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode seller").
				Mark(ierr.ErrDatabase)
		}
		sellers = append(sellers, fromSellerDocument(&doc))
	}
	return sellers, cursor.Err()
}

func (r *sellerRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, ownedBy(ctx))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count sellers").
			Mark(ierr.ErrDatabase)
	}
	return int(n), nil
}

func (r *sellerRepository) GetDefault(ctx context.Context) (*seller.Seller, error) {
	// prefer the flagged default, then fall back to the newest seller
	var doc sellerDocument
	err := r.coll.FindOne(ctx, ownedBy(ctx), options.FindOne().SetSort(bson.D{
		{Key: "is_default", Value: -1},
		{Key: "created_at", Value: -1},
	})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("no seller configured").
				WithHint("Create a seller profile first").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get default seller").
			Mark(ierr.ErrDatabase)
	}
	return fromSellerDocument(&doc), nil
}

func (r *sellerRepository) ClearDefault(ctx context.Context, exceptID string) error {
	filter := ownedBy(ctx)
	if exceptID != "" {
		filter["_id"] = bson.M{"$ne": exceptID}
	}

	_, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_default": false}})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to clear default seller").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
