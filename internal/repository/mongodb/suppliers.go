package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// recomputeRemaining is the trailing pipeline stage of every ledger write.
var recomputeRemaining = bson.D{{Key: "$set", Value: bson.M{
	"remaining": bson.M{"$subtract": bson.A{"$totalSpent", "$cashPaid"}},
}}}

// SupplierRepository stores supplier ledgers keyed by their unique name.
type SupplierRepository struct {
	coll *mongo.Collection
}

func (r *SupplierRepository) Insert(ctx context.Context, ledger *models.SupplierLedger) error {
	if ledger.ID.IsZero() {
		ledger.ID = primitive.NewObjectID()
	}
	if ledger.ProductsSupplied == nil {
		ledger.ProductsSupplied = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, ledger); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateSupplier
		}
		return dataAccess("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierLedger, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SupplierRepository) FindByName(ctx context.Context, name string) (*models.SupplierLedger, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *SupplierRepository) List(ctx context.Context) ([]models.SupplierLedger, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, dataAccess("find suppliers", err)
	}
	ledgers := []models.SupplierLedger{}
	if err := cursor.All(ctx, &ledgers); err != nil {
		return nil, dataAccess("decode suppliers", err)
	}
	return ledgers, nil
}

// AddSpend upserts the ledger by exact name. Missing fields are seeded through
// $ifNull so the first purchase creates {totalSpent: amount, cashPaid: 0}.
func (r *SupplierRepository) AddSpend(ctx context.Context, name string, amount float64) (*models.SupplierLedger, error) {
	ts := now()
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"productsSupplied": bson.M{"$ifNull": bson.A{"$productsSupplied", bson.A{}}},
			"cashPaid":         bson.M{"$ifNull": bson.A{"$cashPaid", 0.0}},
			"totalSpent":       bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$totalSpent", 0.0}}, amount}},
			"createdAt":        bson.M{"$ifNull": bson.A{"$createdAt", ts}},
			"updatedAt":        ts,
		}}},
		recomputeRemaining,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var ledger models.SupplierLedger
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&ledger); err != nil {
		return nil, dataAccess("apply supplier spend", err)
	}
	return &ledger, nil
}

func (r *SupplierRepository) AddPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.SupplierLedger, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"cashPaid":  bson.M{"$add": bson.A{"$cashPaid", amount}},
			"updatedAt": now(),
		}}},
		recomputeRemaining,
	}
	return r.updateOne(ctx, "record supplier payment", id, update)
}

func (r *SupplierRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.SupplierUpdate) (*models.SupplierLedger, error) {
	products := upd.ProductsSupplied
	if products == nil {
		products = []string{}
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"name":             literal(upd.Name),
			"productsSupplied": literal(products),
			"cashPaid":         upd.CashPaid,
			"updatedAt":        now(),
		}}},
		recomputeRemaining,
	}
	return r.updateOne(ctx, "update supplier", id, update)
}

func (r *SupplierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dataAccess("delete supplier", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *SupplierRepository) findOne(ctx context.Context, filter bson.M) (*models.SupplierLedger, error) {
	var ledger models.SupplierLedger
	if err := r.coll.FindOne(ctx, filter).Decode(&ledger); err != nil {
		return nil, notFoundOr("find supplier", err)
	}
	return &ledger, nil
}

func (r *SupplierRepository) updateOne(ctx context.Context, op string, id primitive.ObjectID, update mongo.Pipeline) (*models.SupplierLedger, error) {
	var ledger models.SupplierLedger
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&ledger)
	switch {
	case err == nil:
		return &ledger, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, models.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, models.ErrDuplicateSupplier
	default:
		return nil, dataAccess(op, err)
	}
}
