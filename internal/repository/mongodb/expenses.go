package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// ExpenseRepository stores operating expenses.
type ExpenseRepository struct {
	coll *mongo.Collection
}

func (r *ExpenseRepository) Insert(ctx context.Context, expense *models.ExpenseRecord) error {
	if expense.ID.IsZero() {
		expense.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, expense); err != nil {
		return dataAccess("insert expense", err)
	}
	return nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ExpenseRecord, error) {
	var expense models.ExpenseRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&expense); err != nil {
		return nil, notFoundOr("find expense", err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) Find(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	query := bson.M{}
	addDateRange(query, "date", filter.From, filter.To)

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, dataAccess("find expenses", err)
	}
	expenses := []models.ExpenseRecord{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, dataAccess("decode expenses", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Replace(ctx context.Context, expense *models.ExpenseRecord) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": expense.ID}, expense)
	if err != nil {
		return dataAccess("replace expense", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dataAccess("delete expense", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
