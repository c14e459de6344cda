package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

const (
	customersCollection = "customers"
	billsCollection     = "bill_details"
)

// MongoDBRepository stores customers and bills in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
	now    func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
		logger: logger,
		now:    time.Now,
	}, nil
}

// EnsureIndexes makes mobile_number unique, which the customer upsert relies on.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection(customersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "mobile_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create customers index: %w", err)
	}
	return nil
}

// SearchCustomers returns up to limit customers whose name contains term, ignoring case.
func (r *MongoDBRepository) SearchCustomers(ctx context.Context, term string, limit int) ([]models.Customer, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}

	cursor, err := r.collection(customersCollection).Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	customers := []models.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// UpsertCustomer inserts the customer or overwrites the name stored for its mobile number.
func (r *MongoDBRepository) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	_, err := r.collection(customersCollection).UpdateOne(ctx,
		bson.M{"mobile_number": customer.MobileNumber},
		bson.M{"$set": bson.M{"name": customer.Name}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	r.logger.Debug("customer upserted", zap.String("mobile_number", customer.MobileNumber))
	return nil
}

// InsertBill saves a bill record to the database.
func (r *MongoDBRepository) InsertBill(ctx context.Context, bill models.BillRecord) error {
	bill.ID = ""
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = r.now().UTC()
	}

	if _, err := r.collection(billsCollection).InsertOne(ctx, bill); err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBills returns every bill recorded for the billing period label.
func (r *MongoDBRepository) ListBills(ctx context.Context, period string) ([]models.BillRecord, error) {
	cursor, err := r.collection(billsCollection).Find(ctx,
		bson.M{"billing_period": period},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	bills := []models.BillRecord{}
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}
	return bills, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}
