package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupplierLedger tracks what the shop owes a supplier. Remaining is always
// TotalSpent - CashPaid and is rewritten in the same update as either input.
type SupplierLedger struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	ProductsSupplied []string           `bson:"productsSupplied" json:"productsSupplied"`
	TotalSpent       float64            `bson:"totalSpent" json:"totalSpent"`
	CashPaid         float64            `bson:"cashPaid" json:"cashPaid"`
	Remaining        float64            `bson:"remaining" json:"remaining"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SupplierUpdate holds the manually editable ledger fields.
type SupplierUpdate struct {
	Name             string
	ProductsSupplied []string
	CashPaid         float64
}
