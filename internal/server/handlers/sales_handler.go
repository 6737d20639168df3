package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/sales"
)

// SaleService is the sales use case surface.
type SaleService interface {
	Create(ctx context.Context, in sales.CreateInput) (*models.SaleRecord, error)
	Edit(ctx context.Context, id primitive.ObjectID, in sales.EditInput) (*models.SaleRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter sales.Filter) ([]models.SaleRecord, error)
}

// SaleHandler exposes sales over HTTP.
type SaleHandler struct {
	svc      SaleService
	location *time.Location
	logger   *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc SaleService, loc *time.Location, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{svc: svc, location: loc, logger: logger}
}

// List handles GET /api/sales?month&year or ?startDate&endDate.
func (h *SaleHandler) List(c *gin.Context) {
	from, to, err := listRange(c, h.location)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	records, err := h.svc.List(c.Request.Context(), sales.Filter{From: from, To: to})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /api/sales.
func (h *SaleHandler) Create(c *gin.Context) {
	var in sales.CreateInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	sale, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// Update handles PUT /api/sales/:id.
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var in sales.EditInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	sale, err := h.svc.Edit(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Delete handles DELETE /api/sales/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
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
