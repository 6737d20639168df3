// Package mongodb implements the repository contracts on MongoDB. Every guarded
// mutation is a single findOneAndUpdate so concurrent requests cannot lose
// updates.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
)

const (
	purchasesCollection    = "purchases"
	salesCollection        = "sales"
	suppliersCollection    = "suppliers"
	expensesCollection     = "expenses"
	employeesCollection    = "employees"
	countersCollection     = "counters"
	dailyReportsCollection = "daily_reports"
)

// Database owns the MongoDB client and hands out collection-backed repositories.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewDatabase connects to MongoDB and verifies the connection.
func NewDatabase(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		purchasesCollection: {
			{Keys: bson.D{{Key: "serialNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "productName", Value: 1}}},
			{Keys: bson.D{{Key: "purchaseDate", Value: -1}}},
		},
		salesCollection: {
			{Keys: bson.D{{Key: "invoiceNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "productName", Value: 1}}},
			{Keys: bson.D{{Key: "stockId", Value: 1}}},
		},
		suppliersCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		expensesCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		employeesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		},
		dailyReportsCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for name, indexes := range specs {
		created, err := d.db.Collection(name).Indexes().CreateMany(ctx, indexes)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
		d.logger.Debug("indexes ensured", zap.String("collection", name), zap.Strings("indexes", created))
	}
	return nil
}

// Repositories exposes the collections through the repository contracts.
func (d *Database) Repositories() repository.Store {
	return repository.Store{
		Stocks:    &StockRepository{coll: d.db.Collection(purchasesCollection)},
		Sales:     &SaleRepository{coll: d.db.Collection(salesCollection)},
		Suppliers: &SupplierRepository{coll: d.db.Collection(suppliersCollection)},
		Expenses:  &ExpenseRepository{coll: d.db.Collection(expensesCollection)},
		Employees: &EmployeeRepository{coll: d.db.Collection(employeesCollection)},
		Counters:  &CounterRepository{coll: d.db.Collection(countersCollection)},
		Reports:   &ReportRepository{coll: d.db.Collection(dailyReportsCollection)},
	}
}

// Close closes the MongoDB connection.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// ReportRepository stores daily snapshots in daily_reports.
type ReportRepository struct {
	coll *mongo.Collection
}

// SaveDailyReport saves a daily report to the database.
func (r *ReportRepository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return dataAccess("insert daily report", err)
	}
	return nil
}

// CounterRepository advances named sequences stored as {_id, seq}.
type CounterRepository struct {
	coll *mongo.Collection
}

func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, dataAccess("next "+name+" counter", err)
	}
	return counter.Seq, nil
}

func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", models.ErrDataAccess, op, err)
}

// notFoundOr maps ErrNoDocuments to models.ErrNotFound and wraps anything else.
func notFoundOr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return dataAccess(op, err)
}

// literal keeps client-supplied values from being read as field paths or
// operators inside an aggregation pipeline update.
func literal(v any) bson.M {
	return bson.M{"$literal": v}
}

func addDateRange(filter bson.M, field string, from, to *time.Time) {
	if from == nil && to == nil {
		return
	}
	cond := bson.M{}
	if from != nil {
		cond["$gte"] = *from
	}
	if to != nil {
		cond["$lte"] = *to
	}
	filter[field] = cond
}

func now() time.Time {
	return time.Now().UTC()
}
