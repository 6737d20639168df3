package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// EmployeeRepository stores the staff roster.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *models.Employee) error {
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, employee); err != nil {
		return dataAccess("insert employee", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&employee); err != nil {
		return nil, notFoundOr("find employee", err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, dataAccess("list employees", err)
	}
	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, dataAccess("decode employees", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Replace(ctx context.Context, employee *models.Employee) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": employee.ID}, employee)
	if err != nil {
		return dataAccess("replace employee", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dataAccess("delete employee", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
