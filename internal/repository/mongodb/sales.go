package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// SaleRepository stores sales in the sales collection.
type SaleRepository struct {
	coll *mongo.Collection
}

func (r *SaleRepository) Insert(ctx context.Context, sale *models.SaleRecord) error {
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, sale); err != nil {
		return dataAccess("insert sale", err)
	}
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SaleRecord, error) {
	var sale models.SaleRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		return nil, notFoundOr("find sale", err)
	}
	return &sale, nil
}

func (r *SaleRepository) Find(ctx context.Context, filter models.SaleFilter) ([]models.SaleRecord, error) {
	query := bson.M{}
	if len(filter.ProductNames) > 0 {
		query["productName"] = bson.M{"$in": filter.ProductNames}
	}
	if filter.StockID != nil {
		query["stockId"] = *filter.StockID
	}
	addDateRange(query, "date", filter.From, filter.To)

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, dataAccess("find sales", err)
	}
	sales := []models.SaleRecord{}
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, dataAccess("decode sales", err)
	}
	return sales, nil
}

func (r *SaleRepository) Replace(ctx context.Context, sale *models.SaleRecord, quantity int) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": sale.ID, "quantity": quantity}, sale)
	if err != nil {
		return dataAccess("replace sale", err)
	}
	if res.MatchedCount == 0 {
		return r.missOr(ctx, "replace sale", sale.ID)
	}
	return nil
}

func (r *SaleRepository) Delete(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "quantity": quantity})
	if err != nil {
		return dataAccess("delete sale", err)
	}
	if res.DeletedCount == 0 {
		return r.missOr(ctx, "delete sale", id)
	}
	return nil
}

// missOr tells a vanished sale from one whose quantity moved underneath.
func (r *SaleRepository) missOr(ctx context.Context, op string, id primitive.ObjectID) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return dataAccess(op, err)
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return models.ErrConcurrentUpdate
}

func (r *SaleRepository) SoldQuantities(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$productName",
			"quantity": bson.M{"$sum": "$quantity"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, dataAccess("aggregate sold quantities", err)
	}
	var rows []struct {
		ProductName string `bson:"_id"`
		Quantity    int    `bson:"quantity"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, dataAccess("decode sold quantities", err)
	}

	sold := make(map[string]int, len(rows))
	for _, row := range rows {
		sold[row.ProductName] = row.Quantity
	}
	return sold, nil
}

func (r *SaleRepository) CountByStock(ctx context.Context, stockID primitive.ObjectID) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"stockId": stockID})
	if err != nil {
		return 0, dataAccess("count sales by stock", err)
	}
	return count, nil
}
