package mongodb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

func TestAddDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	filter := bson.M{}
	addDateRange(filter, "date", nil, nil)
	assert.Empty(t, filter)

	addDateRange(filter, "date", &from, nil)
	assert.Equal(t, bson.M{"date": bson.M{"$gte": from}}, filter)

	addDateRange(filter, "date", &from, &to)
	assert.Equal(t, bson.M{"date": bson.M{"$gte": from, "$lte": to}}, filter)
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, notFoundOr("find", mongo.ErrNoDocuments), models.ErrNotFound)

	err := notFoundOr("find", errors.New("socket closed"))
	assert.ErrorIs(t, err, models.ErrDataAccess)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, bson.M{"$literal": "$quantity"}, literal("$quantity"))
}
