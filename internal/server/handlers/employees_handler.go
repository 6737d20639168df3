package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/employees"
)

// EmployeeService is the staff roster use case surface.
type EmployeeService interface {
	Create(ctx context.Context, in employees.Input) (*models.Employee, error)
	Update(ctx context.Context, id primitive.ObjectID, in employees.Input) (*models.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]models.Employee, error)
}

// EmployeeHandler exposes the staff roster over HTTP.
type EmployeeHandler struct {
	svc    EmployeeService
	logger *zap.Logger
}

// NewEmployeeHandler constructs the HTTP handler adapter.
func NewEmployeeHandler(svc EmployeeService, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{svc: svc, logger: logger}
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	roster, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var in employees.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	employee, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// Update handles PUT /api/employees/:id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, h.logger)
	if !ok {
		return
	}
	var in employees.Input
	if !bindJSON(c, h.logger, &in) {
		return
	}
	employee, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
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
