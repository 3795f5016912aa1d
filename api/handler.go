package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos_sales/internal/pos"
	"pos_sales/internal/sales"
)

// salesHandler holds the POS service and implements the HTTP handlers.
type salesHandler struct {
	svc    *pos.Service
	logger *zap.Logger
	opts   Options
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(svc *pos.Service, logger *zap.Logger, opts Options) *salesHandler {
	return &salesHandler{
		svc:    svc,
		logger: logger,
		opts:   opts,
	}
}

type itemRequest struct {
	Name      string              `json:"name"`
	Quantity  decimal.NullDecimal `json:"quantity"`
	UnitPrice decimal.Decimal     `json:"unit_price"`
}

// toInput defaults a missing quantity to one unit.
func (r itemRequest) toInput() sales.ItemInput {
	qty := decimal.NewFromInt(1)
	if r.Quantity.Valid {
		qty = r.Quantity.Decimal
	}
	return sales.ItemInput{Name: r.Name, Quantity: qty, UnitPrice: r.UnitPrice}
}

type checkoutRequest struct {
	SellerID      string `json:"seller_id"`
	PaymentMethod string `json:"payment_method"`
}

type createSaleRequest struct {
	SellerID      string        `json:"seller_id"`
	PaymentMethod string        `json:"payment_method"`
	Items         []itemRequest `json:"items"`
}

// writeError maps domain errors to HTTP statuses.
func (h *salesHandler) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, sales.ErrNotFound),
		errors.Is(err, pos.ErrDraftNotFound),
		errors.Is(err, pos.ErrSellerNotFound),
		errors.Is(err, pos.ErrNoSales):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case sales.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case sales.IsConstraint(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func paymentOrDefault(code string) (sales.PaymentMethod, error) {
	if code == "" {
		return sales.PaymentCash, nil
	}
	return sales.ParsePaymentMethod(code)
}

func (h *salesHandler) handleListSellers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"results": h.svc.Sellers()})
}

func (h *salesHandler) handleCreateSeller(ctx *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	seller, err := h.svc.AddSeller(req.Name)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, seller)
}

func (h *salesHandler) handleDeleteSeller(ctx *gin.Context) {
	if err := h.svc.RemoveSeller(ctx.Param("id")); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *salesHandler) handleOpenDraft(ctx *gin.Context) {
	ctx.JSON(http.StatusCreated, h.svc.OpenDraft())
}

func (h *salesHandler) handleGetDraft(ctx *gin.Context) {
	draft, err := h.svc.Draft(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

func (h *salesHandler) handleDiscardDraft(ctx *gin.Context) {
	if err := h.svc.DiscardDraft(ctx.Param("id")); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *salesHandler) handleAddDraftItem(ctx *gin.Context) {
	var req itemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	draft, err := h.svc.AddDraftItem(ctx.Param("id"), req.toInput())
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, draft)
}

func (h *salesHandler) handleRemoveDraftItem(ctx *gin.Context) {
	draft, err := h.svc.RemoveDraftItem(ctx.Param("id"), ctx.Param("itemId"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, draft)
}

func (h *salesHandler) handleCheckoutDraft(ctx *gin.Context) {
	var req checkoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	method, err := paymentOrDefault(req.PaymentMethod)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	sale, err := h.svc.CheckoutDraft(ctx.Param("id"), req.SellerID, method)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, sale)
}

// handleCreateSale handles the POST /sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req createSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	method, err := paymentOrDefault(req.PaymentMethod)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	inputs := make([]sales.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		inputs = append(inputs, it.toInput())
	}

	sale, err := h.svc.CreateSale(req.SellerID, inputs, method)
	if err != nil {
		h.logger.Warn("failed to create sale", zap.Error(err), zap.String("seller_id", req.SellerID))
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, sale)
}

func (h *salesHandler) handleSearchSales(ctx *gin.Context) {
	criteria := sales.Criteria{SellerID: ctx.Query("seller_id")}

	var err error
	if v := ctx.Query("date_from"); v != "" {
		if criteria.DateFrom, err = parseFlexibleDate(v, h.opts.Location); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if v := ctx.Query("date_to"); v != "" {
		if criteria.DateTo, err = parseFlexibleDate(v, h.opts.Location); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	commission := h.opts.DefaultCommission
	if v := ctx.Query("commission"); v != "" {
		if commission, err = decimal.NewFromString(v); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid commission percentage"})
			return
		}
	}

	report, err := h.svc.Report(criteria, commission)
	if err != nil {
		h.logger.Error("error searching sales", zap.String("seller_filter", criteria.SellerID), zap.Error(err))
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.svc.Sale(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleSaleReceipt(ctx *gin.Context) {
	sale, err := h.svc.Sale(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeReceipt(ctx, sale)
}

func (h *salesHandler) handleLastSale(ctx *gin.Context) {
	sale, err := h.svc.LastSale()
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleLastSaleReceipt(ctx *gin.Context) {
	sale, err := h.svc.LastSale()
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	h.writeReceipt(ctx, sale)
}

func (h *salesHandler) writeReceipt(ctx *gin.Context, sale sales.Sale) {
	sellerName := sale.SellerID
	if seller, ok := h.svc.Seller(sale.SellerID); ok {
		sellerName = seller.Name
	}

	// receipts show the local calendar date
	sale.CreatedAt = sale.CreatedAt.In(h.opts.Location)

	var buf bytes.Buffer
	if err := sales.RenderReceipt(&buf, sale, sellerName); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

func parseFlexibleDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
