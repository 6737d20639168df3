package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/expenses"
)

// ExpenseService is the expenses use case surface.
type ExpenseService interface {
	Create(ctx context.Context, in expenses.Input) (*models.ExpenseRecord, error)
	Update(ctx context.Context, id primitive.ObjectID, in expenses.Input) (*models.ExpenseRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error)
}

// ExpenseHandler exposes expenses over HTTP.
type ExpenseHandler struct {
	svc      ExpenseService
	location *time.Location
	logger   *zap.Logger
}

// NewExpenseHandler constructs the HTTP handler adapter.
func NewExpenseHandler(svc ExpenseService, loc *time.Location, logger *zap.Logger) *ExpenseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExpenseHandler{svc: svc, location: loc, logger: logger}
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	from, to, err := listRange(c, h.location)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	records, err := h.svc.List(c.Request.Context(), models.ExpenseFilter{From: from, To: to})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var in expenses.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	expense, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// Update handles PUT /api/expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var in expenses.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	expense, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
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
