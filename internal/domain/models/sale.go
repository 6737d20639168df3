package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleRecord is one sale against a stock lot. The descriptive fields are
// copied from the lot when the sale is created and never follow later edits.
type SaleRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber   int64              `bson:"invoiceNumber" json:"invoiceNumber"`
	StockID         primitive.ObjectID `bson:"stockId" json:"stockId"`
	SerialNumber    string             `bson:"serialNumber" json:"serialNumber"`
	ProductName     string             `bson:"productName" json:"productName"`
	Type            StockType          `bson:"type" json:"type"`
	Supplier        string             `bson:"supplier" json:"supplier"`
	Model           string             `bson:"model,omitempty" json:"model,omitempty"`
	ManufactureYear int                `bson:"manufactureYear,omitempty" json:"manufactureYear,omitempty"`
	Color           string             `bson:"color,omitempty" json:"color,omitempty"`
	ChassisNumber   string             `bson:"chassisNumber,omitempty" json:"chassisNumber,omitempty"`
	Condition       string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Buyer           string             `bson:"buyer" json:"buyer"`
	Price           float64            `bson:"price" json:"price"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	Discount        float64            `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Date            time.Time          `bson:"date" json:"date"`
}

// FreezeFrom copies the descriptive fields of the lot into the sale.
func (s *SaleRecord) FreezeFrom(stock *StockRecord) {
	s.StockID = stock.ID
	s.SerialNumber = stock.SerialNumber
	s.ProductName = stock.ProductName
	s.Type = stock.Type
	s.Supplier = stock.Supplier
	s.Model = stock.Model
	s.ManufactureYear = stock.ManufactureYear
	s.Color = stock.Color
	s.ChassisNumber = stock.ChassisNumber
	s.Condition = stock.Condition
}

// SaleFilter narrows sale queries.
type SaleFilter struct {
	From         *time.Time
	To           *time.Time
	ProductNames []string
	StockID      *primitive.ObjectID
}
