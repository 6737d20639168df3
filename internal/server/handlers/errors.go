package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/service/reporting"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps domain errors to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, models.ErrInsufficientStock):
		return http.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, models.ErrDuplicateSerialNumber):
		return http.StatusConflict, "DUPLICATE_SERIAL"
	case errors.Is(err, models.ErrDuplicateSupplier):
		return http.StatusConflict, "DUPLICATE_SUPPLIER"
	case errors.Is(err, models.ErrOverRelease), errors.Is(err, models.ErrStockInUse),
		errors.Is(err, models.ErrConcurrentUpdate):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		message = "internal server error"
	} else {
		logger.Debug("request rejected", zap.String("code", code), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: message, Code: code})
}

func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, logger, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return false
	}
	return true
}

func pathID(c *gin.Context, logger *zap.Logger) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, logger, fmt.Errorf("malformed id %q: %w", c.Param("id"), models.ErrInvalidInput))
		return primitive.NilObjectID, false
	}
	return id, true
}

// listRange reads month+year or startDate+endDate from the query. Neither
// pair present means no bound.
func listRange(c *gin.Context, loc *time.Location) (from, to *time.Time, err error) {
	var q reporting.RangeQuery
	switch {
	case c.Query("month") != "" && c.Query("year") != "":
		q = reporting.RangeQuery{Type: "monthly", Month: c.Query("month"), Year: c.Query("year")}
	case c.Query("startDate") != "" && c.Query("endDate") != "":
		q = reporting.RangeQuery{Type: "custom", From: c.Query("startDate"), To: c.Query("endDate")}
	default:
		return nil, nil, nil
	}

	r, err := reporting.ParseRange(q, loc)
	if err != nil {
		return nil, nil, err
	}
	return &r.Start, &r.End, nil
}
