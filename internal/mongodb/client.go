package mongodb

import (
	"context"
	"time"

	"github.com/billora/billora/internal/config"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	CollectionUsers     = "users"
	CollectionCustomers = "customers"
	CollectionProducts  = "products"
	CollectionSellers   = "sellers"
	CollectionInvoices  = "invoices"
)

// Client wraps a mongo database handle with an explicit connect/disconnect
// lifecycle. It replaces the ambient lazily-initialized global connection of
// the original system: constructed once, injected where needed, torn down on
// shutdown.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

func NewClient(cfg *config.Configuration, logger *logger.Logger) (*Client, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create mongo client").
			Mark(ierr.ErrDatabase)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
		logger: logger,
	}, nil
}

// Connect verifies connectivity with exponential backoff and creates the
// collection indexes.
func (c *Client) Connect(ctx context.Context) error {
	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return c.client.Ping(pingCtx, readpref.Primary())
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to connect to mongodb").
			Mark(ierr.ErrDatabase)
	}

	c.logger.Infow("connected to mongodb", "database", c.db.Name())
	return c.ensureIndexes(ctx)
}

// Disconnect releases the underlying connections
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Collection returns a handle to the named collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCustomers: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		CollectionSellers: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_default", Value: -1}}},
		},
		CollectionInvoices: {
			{
				Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "invoice_number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "invoice_date", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := c.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return ierr.WithError(err).
				WithMessage("failed to create indexes for " + coll).
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

// IsDuplicateKeyError reports whether err is a unique index violation
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
