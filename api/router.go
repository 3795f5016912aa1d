package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos_sales/internal/pos"
)

// Options carries the request-level defaults the handlers need.
type Options struct {
	DefaultCommission decimal.Decimal
	Location          *time.Location
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// InitRoutes registers every endpoint on the given Gin engine.
func InitRoutes(e *gin.Engine, svc *pos.Service, logger *zap.Logger, opts Options) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	e.Use(zapLoggerMiddleware(logger))

	h := NewSalesHandler(svc, logger, opts)

	e.GET("/sellers", h.handleListSellers)
	e.POST("/sellers", h.handleCreateSeller)
	e.DELETE("/sellers/:id", h.handleDeleteSeller)

	e.POST("/drafts", h.handleOpenDraft)
	e.GET("/drafts/:id", h.handleGetDraft)
	e.DELETE("/drafts/:id", h.handleDiscardDraft)
	e.POST("/drafts/:id/items", h.handleAddDraftItem)
	e.DELETE("/drafts/:id/items/:itemId", h.handleRemoveDraftItem)
	e.POST("/drafts/:id/checkout", h.handleCheckoutDraft)

	e.POST("/sales", h.handleCreateSale)
	e.GET("/sales", h.handleSearchSales)
	e.GET("/sales/:id", h.handleGetSale)
	e.GET("/sales/:id/receipt", h.handleSaleReceipt)
	e.GET("/last-sale", h.handleLastSale)
	e.GET("/last-sale/receipt", h.handleLastSaleReceipt)

	if opts.Metrics != nil {
		e.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
