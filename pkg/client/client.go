package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"pos_sales/internal/sales"
	"pos_sales/internal/sellers"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pos api: %d %s", e.StatusCode, e.Message)
}

// Client is a resty-backed client for the POS HTTP API.
type Client struct {
	httpClient *resty.Client
}

// New builds a client for the service at baseURL.
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

// Item is one line of a sale to create.
type Item struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest is the body of POST /sales.
type CreateSaleRequest struct {
	SellerID      string `json:"seller_id"`
	PaymentMethod string `json:"payment_method"`
	Items         []Item `json:"items"`
}

// Query holds the optional filters of GET /sales. Dates use YYYY-MM-DD.
type Query struct {
	SellerID   string
	DateFrom   string
	DateTo     string
	Commission string
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	apiErr := new(APIError)
	req := c.httpClient.R().SetContext(ctx).SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return resp, apiErr
	}
	return resp, nil
}

// Sellers lists the roster.
func (c *Client) Sellers(ctx context.Context) ([]sellers.Seller, error) {
	var out struct {
		Results []sellers.Seller `json:"results"`
	}
	if _, err := c.do(ctx, resty.MethodGet, "/sellers", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// AddSeller registers a seller.
func (c *Client) AddSeller(ctx context.Context, name string) (sellers.Seller, error) {
	var out sellers.Seller
	_, err := c.do(ctx, resty.MethodPost, "/sellers", map[string]string{"name": name}, &out)
	return out, err
}

// RemoveSeller deletes a seller without sales.
func (c *Client) RemoveSeller(ctx context.Context, id string) error {
	_, err := c.do(ctx, resty.MethodDelete, "/sellers/"+id, nil, nil)
	return err
}

// CreateSale records a sale.
func (c *Client) CreateSale(ctx context.Context, req CreateSaleRequest) (sales.Sale, error) {
	var out sales.Sale
	_, err := c.do(ctx, resty.MethodPost, "/sales", req, &out)
	return out, err
}

// QuerySales runs a sales report.
func (c *Client) QuerySales(ctx context.Context, q Query) (sales.Report, error) {
	var out sales.Report
	apiErr := new(APIError)

	req := c.httpClient.R().SetContext(ctx).SetResult(&out).SetError(apiErr)
	for key, value := range map[string]string{
		"seller_id":  q.SellerID,
		"date_from":  q.DateFrom,
		"date_to":    q.DateTo,
		"commission": q.Commission,
	} {
		if value != "" {
			req.SetQueryParam(key, value)
		}
	}

	resp, err := req.Get("/sales")
	if err != nil {
		return sales.Report{}, fmt.Errorf("GET /sales: %w", err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return sales.Report{}, apiErr
	}
	return out, nil
}

// LastSale fetches the most recently saved sale.
func (c *Client) LastSale(ctx context.Context) (sales.Sale, error) {
	var out sales.Sale
	_, err := c.do(ctx, resty.MethodGet, "/last-sale", nil, &out)
	return out, err
}

// Receipt fetches the printable receipt of a sale; an empty id means the last sale.
func (c *Client) Receipt(ctx context.Context, saleID string) (string, error) {
	path := "/last-sale/receipt"
	if saleID != "" {
		path = "/sales/" + saleID + "/receipt"
	}
	resp, err := c.do(ctx, resty.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	return resp.String(), nil
}
