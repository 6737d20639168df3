package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/suppliers"
)

// SupplierService is the supplier ledger use case surface.
type SupplierService interface {
	Create(ctx context.Context, in suppliers.Input) (*models.SupplierLedger, error)
	List(ctx context.Context) ([]models.SupplierLedger, error)
	Update(ctx context.Context, id primitive.ObjectID, in suppliers.Input) (*models.SupplierLedger, error)
	RecordPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.SupplierLedger, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SupplierHandler exposes supplier ledgers over HTTP.
type SupplierHandler struct {
	svc    SupplierService
	logger *zap.Logger
}

// NewSupplierHandler constructs the HTTP handler adapter.
func NewSupplierHandler(svc SupplierService, logger *zap.Logger) *SupplierHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierHandler{svc: svc, logger: logger}
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

// List handles GET /api/suppliers.
func (h *SupplierHandler) List(c *gin.Context) {
	ledgers, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

// Create handles POST /api/suppliers.
func (h *SupplierHandler) Create(c *gin.Context) {
	var in suppliers.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	ledger, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ledger)
}

// Update handles PUT /api/suppliers/:id.
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var in suppliers.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	ledger, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// RecordPayment handles POST /api/suppliers/:id/payments.
func (h *SupplierHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var req paymentRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	ledger, err := h.svc.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// Delete handles DELETE /api/suppliers/:id.
func (h *SupplierHandler) Delete(c *gin.Context) {
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
