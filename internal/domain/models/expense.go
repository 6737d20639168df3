package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExpenseRecord captures an operating expense (rent, electricity, ...).
type ExpenseRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category" json:"category"`
	Amount   float64            `bson:"amount" json:"amount"`
	Note     string             `bson:"note,omitempty" json:"note,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
}

// ExpenseFilter narrows expense queries.
type ExpenseFilter struct {
	From *time.Time
	To   *time.Time
}
