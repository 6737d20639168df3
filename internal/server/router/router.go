package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted under /api.
type Handlers struct {
	Purchases *handlers.PurchaseHandler
	Sales     *handlers.SaleHandler
	Expenses  *handlers.ExpenseHandler
	Suppliers *handlers.SupplierHandler
	Employees *handlers.EmployeeHandler
	Reports   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. An empty
// origin list or a "*" entry allows every origin.
func New(h Handlers, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(allowedOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	purchases := api.Group("/purchases")
	purchases.GET("", h.Purchases.List)
	purchases.GET("/report", h.Purchases.Report)
	purchases.POST("", h.Purchases.Create)
	purchases.PUT("/:id", h.Purchases.Update)
	purchases.DELETE("/:id", h.Purchases.Delete)

	api.GET("/products", h.Purchases.Products)

	sales := api.Group("/sales")
	sales.GET("", h.Sales.List)
	sales.POST("", h.Sales.Create)
	sales.PUT("/:id", h.Sales.Update)
	sales.DELETE("/:id", h.Sales.Delete)

	expenses := api.Group("/expenses")
	expenses.GET("", h.Expenses.List)
	expenses.POST("", h.Expenses.Create)
	expenses.PUT("/:id", h.Expenses.Update)
	expenses.DELETE("/:id", h.Expenses.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", h.Suppliers.List)
	suppliers.POST("", h.Suppliers.Create)
	suppliers.PUT("/:id", h.Suppliers.Update)
	suppliers.DELETE("/:id", h.Suppliers.Delete)
	suppliers.POST("/:id/payments", h.Suppliers.RecordPayment)

	employees := api.Group("/employees")
	employees.GET("", h.Employees.List)
	employees.POST("", h.Employees.Create)
	employees.PUT("/:id", h.Employees.Update)
	employees.DELETE("/:id", h.Employees.Delete)

	reports := api.Group("/reports")
	reports.GET("", h.Reports.Get)
	reports.GET("/export", h.Reports.Export)

	logger.Info("router initialized", zap.Strings("cors_origins", allowedOrigins))

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AddAllowMethods("DELETE", "OPTIONS")
	cfg.AddExposeHeaders("Content-Disposition", "Content-Length")
	return cfg
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
