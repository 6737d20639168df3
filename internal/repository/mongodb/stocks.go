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

// StockRepository stores purchased lots in the purchases collection.
type StockRepository struct {
	coll *mongo.Collection
}

func (r *StockRepository) Insert(ctx context.Context, record *models.StockRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateSerialNumber
		}
		return dataAccess("insert stock", err)
	}
	return nil
}

func (r *StockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, notFoundOr("find stock", err)
	}
	return &record, nil
}

func (r *StockRepository) Find(ctx context.Context, filter models.StockFilter) ([]models.StockRecord, error) {
	query := bson.M{}
	if len(filter.ProductNames) > 0 {
		query["productName"] = bson.M{"$in": filter.ProductNames}
	}
	if filter.InStockOnly {
		query["quantity"] = bson.M{"$gt": 0}
	}
	addDateRange(query, "purchaseDate", filter.From, filter.To)

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}}))
	if err != nil {
		return nil, dataAccess("find stocks", err)
	}
	records := []models.StockRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dataAccess("decode stocks", err)
	}
	return records, nil
}

// Reserve decrements quantity in one conditional update. When nothing matches
// the id is looked up again to tell a missing lot from a short one.
func (r *StockRepository) Reserve(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updatedAt": now()},
	}
	return r.guardedUpdate(ctx, "reserve stock", id, filter, update, models.ErrInsufficientStock)
}

func (r *StockRepository) Release(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$quantity", qty}},
			"$purchasedQuantity",
		}},
	}
	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updatedAt": now()},
	}
	return r.guardedUpdate(ctx, "release stock", id, filter, update, models.ErrOverRelease)
}

// Revise rewrites the lot with a pipeline update so the on-hand quantity is
// shifted against the stored purchasedQuantity in the same write.
func (r *StockRepository) Revise(ctx context.Context, id primitive.ObjectID, rev models.StockRevision) (*models.StockRecord, error) {
	shift := bson.M{"$subtract": bson.A{rev.PurchasedQuantity, "$purchasedQuantity"}}
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{"$gte": bson.A{
			bson.M{"$add": bson.A{"$quantity", shift}},
			0,
		}},
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"quantity":          bson.M{"$add": bson.A{"$quantity", shift}},
			"purchasedQuantity": rev.PurchasedQuantity,
			"serialNumber":      literal(rev.SerialNumber),
			"productName":       literal(rev.ProductName),
			"type":              literal(string(rev.Type)),
			"supplier":          literal(rev.Supplier),
			"price":             rev.Price,
			"shippingCost":      rev.ShippingCost,
			"customsFee":        rev.CustomsFee,
			"total":             rev.Total,
			"model":             literal(rev.Model),
			"manufactureYear":   rev.ManufactureYear,
			"color":             literal(rev.Color),
			"chassisNumber":     literal(rev.ChassisNumber),
			"condition":         literal(rev.Condition),
			"notes":             literal(rev.Notes),
			"purchaseDate":      rev.PurchaseDate,
			"updatedAt":         rev.UpdatedAt,
		}}},
	}

	var before models.StockRecord
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
	switch {
	case err == nil:
		return &before, nil
	case mongo.IsDuplicateKeyError(err):
		return nil, models.ErrDuplicateSerialNumber
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, r.missOr(ctx, "revise stock", id, models.ErrInsufficientStock)
	default:
		return nil, dataAccess("revise stock", err)
	}
}

func (r *StockRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dataAccess("delete stock", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *StockRepository) guardedUpdate(ctx context.Context, op string, id primitive.ObjectID, filter, update any, guardErr error) (*models.StockRecord, error) {
	var record models.StockRecord
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err == nil {
		return &record, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.missOr(ctx, op, id, guardErr)
	}
	return nil, dataAccess(op, err)
}

// missOr returns models.ErrNotFound when the lot does not exist and guardErr
// when it exists but the guard rejected the update.
func (r *StockRepository) missOr(ctx context.Context, op string, id primitive.ObjectID, guardErr error) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return dataAccess(op, err)
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return guardErr
}
