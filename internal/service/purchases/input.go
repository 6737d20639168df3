package purchases

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// Input is the body of a purchase create or edit. Quantity is the purchased
// quantity of the lot.
type Input struct {
	SerialNumber    string     `json:"serialNumber"`
	ProductName     string     `json:"productName"`
	Type            string     `json:"type"`
	Supplier        string     `json:"supplier"`
	Quantity        int        `json:"quantity"`
	Price           float64    `json:"price"`
	ShippingCost    float64    `json:"shippingCost"`
	CustomsFee      float64    `json:"customsFee"`
	Model           string     `json:"model"`
	ManufactureYear int        `json:"manufactureYear"`
	Color           string     `json:"color"`
	ChassisNumber   string     `json:"chassisNumber"`
	Condition       string     `json:"condition"`
	Notes           string     `json:"notes"`
	PurchaseDate    *time.Time `json:"purchaseDate"`
}

type normalized struct {
	Input
	stockType models.StockType
}

func (in Input) normalize() (normalized, error) {
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.Condition = strings.ToLower(strings.TrimSpace(in.Condition))

	switch {
	case in.ProductName == "":
		return normalized{}, fmt.Errorf("product name is required: %w", models.ErrInvalidInput)
	case in.Supplier == "":
		return normalized{}, fmt.Errorf("supplier is required: %w", models.ErrInvalidInput)
	case in.Quantity <= 0:
		return normalized{}, fmt.Errorf("quantity must be positive: %w", models.ErrInvalidInput)
	case in.Price < 0 || in.ShippingCost < 0 || in.CustomsFee < 0:
		return normalized{}, fmt.Errorf("amounts must not be negative: %w", models.ErrInvalidInput)
	case in.Condition != "" && in.Condition != "new" && in.Condition != "used":
		return normalized{}, fmt.Errorf("condition must be new or used: %w", models.ErrInvalidInput)
	}

	stockType, ok := models.ParseStockType(in.Type)
	if !ok {
		return normalized{}, fmt.Errorf("unknown type %q: %w", in.Type, models.ErrInvalidInput)
	}
	return normalized{Input: in, stockType: stockType}, nil
}
