package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockType distinguishes whole cars from spare parts.
type StockType string

const (
	StockTypeCar  StockType = "car"
	StockTypePart StockType = "part"
)

// ParseStockType normalizes the type sent by clients. The legacy "spare_part"
// value maps to StockTypePart.
func ParseStockType(value string) (StockType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(StockTypeCar):
		return StockTypeCar, true
	case string(StockTypePart), "spare_part":
		return StockTypePart, true
	default:
		return "", false
	}
}

// StockRecord is one purchased lot of a product. Quantity is what is still on
// hand; PurchasedQuantity is what the lot was bought with and bounds releases.
type StockRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber     int64              `bson:"invoiceNumber" json:"invoiceNumber"`
	SerialNumber      string             `bson:"serialNumber" json:"serialNumber"`
	ProductName       string             `bson:"productName" json:"productName"`
	Type              StockType          `bson:"type" json:"type"`
	Supplier          string             `bson:"supplier" json:"supplier"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	PurchasedQuantity int                `bson:"purchasedQuantity" json:"purchasedQuantity"`
	Price             float64            `bson:"price" json:"price"`
	ShippingCost      float64            `bson:"shippingCost" json:"shippingCost"`
	CustomsFee        float64            `bson:"customsFee" json:"customsFee"`
	Total             float64            `bson:"total" json:"total"`
	Model             string             `bson:"model,omitempty" json:"model,omitempty"`
	ManufactureYear   int                `bson:"manufactureYear,omitempty" json:"manufactureYear,omitempty"`
	Color             string             `bson:"color,omitempty" json:"color,omitempty"`
	ChassisNumber     string             `bson:"chassisNumber,omitempty" json:"chassisNumber,omitempty"`
	Condition         string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PurchaseDate      time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockRevision carries the editable fields of a purchase. Every field is
// absolute; the repository derives the on-hand delta from PurchasedQuantity.
type StockRevision struct {
	SerialNumber      string
	ProductName       string
	Type              StockType
	Supplier          string
	PurchasedQuantity int
	Price             float64
	ShippingCost      float64
	CustomsFee        float64
	Total             float64
	Model             string
	ManufactureYear   int
	Color             string
	ChassisNumber     string
	Condition         string
	Notes             string
	PurchaseDate      time.Time
	UpdatedAt         time.Time
}

// Apply copies the revision onto r and shifts the on-hand quantity by the
// change in purchased quantity.
func (rev StockRevision) Apply(r *StockRecord) {
	r.Quantity += rev.PurchasedQuantity - r.PurchasedQuantity
	r.SerialNumber = rev.SerialNumber
	r.ProductName = rev.ProductName
	r.Type = rev.Type
	r.Supplier = rev.Supplier
	r.PurchasedQuantity = rev.PurchasedQuantity
	r.Price = rev.Price
	r.ShippingCost = rev.ShippingCost
	r.CustomsFee = rev.CustomsFee
	r.Total = rev.Total
	r.Model = rev.Model
	r.ManufactureYear = rev.ManufactureYear
	r.Color = rev.Color
	r.ChassisNumber = rev.ChassisNumber
	r.Condition = rev.Condition
	r.Notes = rev.Notes
	r.PurchaseDate = rev.PurchaseDate
	r.UpdatedAt = rev.UpdatedAt
}

// StockFilter narrows stock queries. Zero values mean "no restriction".
type StockFilter struct {
	ProductNames []string
	From         *time.Time
	To           *time.Time
	InStockOnly  bool
}
