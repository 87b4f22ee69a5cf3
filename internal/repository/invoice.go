package repository

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/invoice"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/mongodb"
	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type invoiceRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

func NewInvoiceRepository(client *mongodb.Client, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		coll:   client.Collection(mongodb.CollectionInvoices),
		logger: logger,
	}
}

type lineItemDocument struct {
	ProductID  *string         `bson:"product_id,omitempty"`
	Name       string          `bson:"name"`
	Quantity   int64           `bson:"quantity"`
	UnitPrice  bson.Decimal128 `bson:"price"`
	GSTPercent bson.Decimal128 `bson:"gst"`
	HSNCode    *string         `bson:"hsn_code,omitempty"`
	LineTotal  bson.Decimal128 `bson:"total"`
}

type sellerSnapshotDocument struct {
	BusinessName string  `bson:"business_name"`
	Address      *string `bson:"address,omitempty"`
	GSTIN        *string `bson:"gstin,omitempty"`
	Phone        *string `bson:"phone,omitempty"`
	Email        *string `bson:"email,omitempty"`
}

type invoiceDocument struct {
	ID              string                  `bson:"_id"`
	OwnerID         string                  `bson:"owner_id"`
	InvoiceNumber   string                  `bson:"invoice_number"`
	CustomerID      *string                 `bson:"customer_id,omitempty"`
	CustomerName    string                  `bson:"customer_name"`
	CustomerEmail   *string                 `bson:"customer_email,omitempty"`
	CustomerPhone   *string                 `bson:"customer_phone,omitempty"`
	CustomerAddress *string                 `bson:"customer_address,omitempty"`
	CustomerGSTIN   *string                 `bson:"customer_gstin,omitempty"`
	SellerDetails   *sellerSnapshotDocument `bson:"seller_details,omitempty"`
	Items           []lineItemDocument      `bson:"items"`
	Subtotal        bson.Decimal128         `bson:"subtotal"`
	TotalGST        bson.Decimal128         `bson:"total_gst"`
	GrandTotal      bson.Decimal128         `bson:"grand_total"`
	InvoiceDate     time.Time               `bson:"invoice_date"`
	DueDate         *time.Time              `bson:"due_date,omitempty"`
	Status          string                  `bson:"status"`
	Notes           *string                 `bson:"notes,omitempty"`
	CustomField     *string                 `bson:"custom_field,omitempty"`
	Version         int                     `bson:"version"`
	CreatedAt       time.Time               `bson:"created_at"`
	UpdatedAt       time.Time               `bson:"updated_at"`
}

func toInvoiceDocument(inv *invoice.Invoice) *invoiceDocument {
	items := make([]lineItemDocument, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = lineItemDocument{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  toDecimal128(item.UnitPrice),
			GSTPercent: toDecimal128(item.GSTPercent),
			HSNCode:    item.HSNCode,
			LineTotal:  toDecimal128(item.LineTotal),
		}
	}

	var snapshot *sellerSnapshotDocument
	if inv.SellerDetails != nil {
		snapshot = &sellerSnapshotDocument{
			BusinessName: inv.SellerDetails.BusinessName,
			Address:      inv.SellerDetails.Address,
			GSTIN:        inv.SellerDetails.GSTIN,
			Phone:        inv.SellerDetails.Phone,
			Email:        inv.SellerDetails.Email,
		}
	}

	return &invoiceDocument{
		ID:              inv.ID,
		OwnerID:         inv.OwnerID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		CustomerGSTIN:   inv.CustomerGSTIN,
		SellerDetails:   snapshot,
		Items:           items,
		Subtotal:        toDecimal128(inv.Subtotal),
		TotalGST:        toDecimal128(inv.TotalGST),
		GrandTotal:      toDecimal128(inv.GrandTotal),
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Status:          string(inv.Status),
		Notes:           inv.Notes,
		CustomField:     inv.CustomField,
		Version:         inv.Version,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func fromInvoiceDocument(d *invoiceDocument) *invoice.Invoice {
	items := make([]invoice.LineItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = invoice.LineItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  fromDecimal128(item.UnitPrice),
			GSTPercent: fromDecimal128(item.GSTPercent),
			HSNCode:    item.HSNCode,
			LineTotal:  fromDecimal128(item.LineTotal),
		}
	}

	var snapshot *invoice.SellerSnapshot
	if d.SellerDetails != nil {
		snapshot = &invoice.SellerSnapshot{
			BusinessName: d.SellerDetails.BusinessName,
			Address:      d.SellerDetails.Address,
			GSTIN:        d.SellerDetails.GSTIN,
			Phone:        d.SellerDetails.Phone,
			Email:        d.SellerDetails.Email,
		}
	}

	return &invoice.Invoice{
		ID:              d.ID,
		InvoiceNumber:   d.InvoiceNumber,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		CustomerAddress: d.CustomerAddress,
		CustomerGSTIN:   d.CustomerGSTIN,
		SellerDetails:   snapshot,
		Items:           items,
		Subtotal:        fromDecimal128(d.Subtotal),
		TotalGST:        fromDecimal128(d.TotalGST),
		GrandTotal:      fromDecimal128(d.GrandTotal),
		InvoiceDate:     d.InvoiceDate,
		DueDate:         d.DueDate,
		Status:          types.InvoiceStatus(d.Status),
		Notes:           d.Notes,
		CustomField:     d.CustomField,
		Version:         d.Version,
		BaseModel: types.BaseModel{
			OwnerID:   d.OwnerID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := r.coll.InsertOne(ctx, toInvoiceDocument(inv)); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHintf("Invoice number %s is already in use", inv.InvoiceNumber).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var doc invoiceDocument
	err := r.coll.FindOne(ctx, ownedByID(ctx, id)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return fromInvoiceDocument(&doc), nil
}

func (r *invoiceRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	filter := ownedBy(ctx)
	filter["invoice_number"] = invoiceNumber

	var doc invoiceDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return fromInvoiceDocument(&doc), nil
}

// Update replaces the document only when the stored version matches the
// version the caller read, converting the concurrent-edit race into a
// detectable conflict instead of a silent lost write.
func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	filter := ownedByID(ctx, inv.ID)
	filter["version"] = inv.Version

	doc := toInvoiceDocument(inv)
	doc.Version = inv.Version + 1
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return ierr.WithError(err).
				WithHintf("Invoice number %s is already in use", inv.InvoiceNumber).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	if res.MatchedCount == 0 {
		// distinguish a stale version from a missing document
		if _, getErr := r.Get(ctx, inv.ID); getErr == nil {
			return ierr.NewError("invoice was modified concurrently").
				WithHint("The invoice was changed by another request; reload and retry").
				Mark(ierr.ErrVersionConflict)
		}
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	inv.Version = doc.Version
	inv.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedByID(ctx, id))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	if res.DeletedCount == 0 {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query := ownedBy(ctx)
	if filter != nil && filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "invoice_date", Value: -1}})
	if limit := filter.GetLimit(); limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var invoices []*invoice.Invoice
	for cursor.Next(ctx) {
		var doc invoiceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode invoice").
				Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, fromInvoiceDocument(&doc))
	}
	return invoices, cursor.Err()
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, ownedBy(ctx))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return int(n), nil
}

// SumTotals aggregates the persisted totals server-side; decimal128 sums
// are exact, so no precision is lost in the pipeline.
func (r *invoiceRepository) SumTotals(ctx context.Context, query invoice.TotalsQuery) (invoice.TotalsAggregate, error) {
	match := ownedBy(ctx)
	if query.Status != nil {
		match["status"] = string(*query.Status)
	}
	if query.From != nil || query.To != nil {
		dateRange := bson.M{}
		if query.From != nil {
			dateRange["$gte"] = *query.From
		}
		if query.To != nil {
			dateRange["$lte"] = *query.To
		}
		match["invoice_date"] = dateRange
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"grand_total": bson.M{"$sum": "$grand_total"},
			"total_gst":   bson.M{"$sum": "$total_gst"},
		}}},
	}

	zero := invoice.TotalsAggregate{
		GrandTotal: decimal.Zero,
		TotalGST:   decimal.Zero,
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return zero, ierr.WithError(err).
			WithHint("Failed to aggregate invoice totals").
			Mark(ierr.ErrDatabase)
	}
	defer cursor.Close(ctx)

	var result struct {
		GrandTotal bson.Decimal128 `bson:"grand_total"`
		TotalGST   bson.Decimal128 `bson:"total_gst"`
	}
	if !cursor.Next(ctx) {
		return zero, cursor.Err()
	}
	if err := cursor.Decode(&result); err != nil {
		return zero, ierr.WithError(err).
			WithHint("Failed to decode invoice totals").
			Mark(ierr.ErrDatabase)
	}

	return invoice.TotalsAggregate{
		GrandTotal: fromDecimal128(result.GrandTotal),
		TotalGST:   fromDecimal128(result.TotalGST),
	}, nil
}
