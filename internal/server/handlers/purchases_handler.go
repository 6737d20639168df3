package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/purchases"
)

// PurchaseService is the purchases use case surface.
type PurchaseService interface {
	Create(ctx context.Context, in purchases.Input) (*models.StockRecord, error)
	Revise(ctx context.Context, id primitive.ObjectID, in purchases.Input) (*models.StockRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, period string) ([]models.StockRecord, error)
	Report(ctx context.Context, from, to *time.Time) (*purchases.Report, error)
}

// ProductLister lists stock lots.
type ProductLister interface {
	ListProducts(ctx context.Context, all bool) ([]models.StockRecord, error)
}

// PurchaseHandler exposes purchases and the current product list.
type PurchaseHandler struct {
	svc      PurchaseService
	products ProductLister
	location *time.Location
	logger   *zap.Logger
}

// NewPurchaseHandler constructs the HTTP handler adapter.
func NewPurchaseHandler(svc PurchaseService, products ProductLister, loc *time.Location, logger *zap.Logger) *PurchaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PurchaseHandler{svc: svc, products: products, location: loc, logger: logger}
}

// List handles GET /api/purchases?period=daily|weekly|monthly|all.
func (h *PurchaseHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query("period"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Report handles GET /api/purchases/report?startDate&endDate.
func (h *PurchaseHandler) Report(c *gin.Context) {
	from, to, err := listRange(c, h.location)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	report, err := h.svc.Report(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Create handles POST /api/purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var in purchases.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	record, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Update handles PUT /api/purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var in purchases.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	record, err := h.svc.Revise(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /api/purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Products handles GET /api/products. Only lots with stock on hand are listed
// unless all=true.
func (h *PurchaseHandler) Products(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	records, err := h.products.ListProducts(c.Request.Context(), all)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
