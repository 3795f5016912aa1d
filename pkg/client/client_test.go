package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pos_sales/api"
	"pos_sales/internal/pos"
	"pos_sales/internal/sales"
	"pos_sales/internal/sellers"
)

func newTestServer(t *testing.T) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	svc := pos.NewService(sales.NewLocalStorage(), sellers.Seed(), zaptest.NewLogger(t))
	api.InitRoutes(router, svc, zaptest.NewLogger(t), api.Options{
		DefaultCommission: decimal.NewFromInt(5),
		Location:          time.UTC,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClient_RoundTrip(t *testing.T) {
	c := New(newTestServer(t).URL + "/")
	ctx := context.Background()

	list, err := c.Sellers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	added, err := c.AddSeller(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "4", added.ID)

	first, err := c.CreateSale(ctx, CreateSaleRequest{
		SellerID:      "4",
		PaymentMethod: "cash",
		Items: []Item{
			{Name: "Bread", Quantity: d("2"), UnitPrice: d("3.50")},
			{Name: "Milk", Quantity: d("1"), UnitPrice: d("4.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, d("11").Equal(first.Total))

	_, err = c.CreateSale(ctx, CreateSaleRequest{
		SellerID: "4",
		Items:    []Item{{Name: "Cake", Quantity: d("1"), UnitPrice: d("20")}},
	})
	require.NoError(t, err)

	report, err := c.QuerySales(ctx, Query{SellerID: "4", Commission: "5"})
	require.NoError(t, err)
	assert.Equal(t, sales.ReportPopulated, report.State)
	assert.Len(t, report.Results, 2)
	assert.True(t, d("31").Equal(report.Summary.TotalSales))
	assert.True(t, d("1.55").Equal(report.Summary.Commission))

	last, err := c.LastSale(ctx)
	require.NoError(t, err)
	assert.True(t, d("20").Equal(last.Total))

	receipt, err := c.Receipt(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, receipt, "Seller: Ana")
	assert.Contains(t, receipt, "20.00")

	receipt, err = c.Receipt(ctx, first.ID)
	require.NoError(t, err)
	assert.Contains(t, receipt, "Bread")
}

func TestClient_Errors(t *testing.T) {
	c := New(newTestServer(t).URL)
	ctx := context.Background()

	_, err := c.CreateSale(ctx, CreateSaleRequest{SellerID: ""})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "required fields missing", apiErr.Message)

	_, err = c.CreateSale(ctx, CreateSaleRequest{
		SellerID: "1",
		Items:    []Item{{Name: "Bread", Quantity: d("1"), UnitPrice: d("1")}},
	})
	require.NoError(t, err)

	err = c.RemoveSeller(ctx, "1")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	require.NoError(t, c.RemoveSeller(ctx, "2"))

	_, err = c.QuerySales(ctx, Query{DateFrom: "yesterday"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	report, err := c.QuerySales(ctx, Query{SellerID: "3"})
	require.NoError(t, err)
	assert.Equal(t, sales.ReportEmpty, report.State)
}

func TestClient_NoSalesYet(t *testing.T) {
	c := New(newTestServer(t).URL)

	_, err := c.Receipt(context.Background(), "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
