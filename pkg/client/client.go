// Package client is a typed wrapper around the stock management HTTP API,
// plus the client-side stores the UI layer works against: a cached,
// debounced product listing and a locally persisted cart.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Product mirrors the API's product JSON.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	Unit         string    `json:"unit"`
	Tag          string    `json:"tag"`
	ImageURL     string    `json:"imageUrl"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	IsEnabled    bool      `json:"isEnabled"`
	SoldQuantity int       `json:"soldQuantity"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Tag      string  `json:"tag"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Price    float64 `json:"price"`
}

// ProductUpdate is a partial update; nil fields are omitted from the request
// so the server leaves them unchanged.
type ProductUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	Tag          *string  `json:"tag,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Status       *string  `json:"status,omitempty"`
	IsEnabled    *bool    `json:"isEnabled,omitempty"`
	SoldQuantity *int     `json:"soldQuantity,omitempty"`
}

// StockLog mirrors the API's stock log JSON.
type StockLog struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
	OperationType    string    `json:"operationType"`
	Timestamp        time.Time `json:"timestamp"`
}

// ProductsResponse is one page of the product listing.
type ProductsResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// APIError is an error response from the server ({message: ...}).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a transport-level failure (connection refused, timeout).
// The server was never reached, so the message is phrased for the user
// rather than passed through. No retry is attempted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "could not reach the stock server"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client is a typed HTTP client for the stock management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:3333").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do performs one JSON request/response round trip.
func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var serverErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&serverErr)
		if serverErr.Message == "" {
			serverErr.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: serverErr.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetProducts fetches one page of the product listing.
func (c *Client) GetProducts(page, limit int, search string) (*ProductsResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var result ProductsResponse
	if err := c.do(http.MethodGet, "/products?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddProduct creates a new product.
func (c *Client) AddProduct(input ProductInput) (*Product, error) {
	var product Product
	if err := c.do(http.MethodPost, "/add-product", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product. The server records a
// stock log entry for every call to this endpoint.
func (c *Client) UpdateProduct(id string, update ProductUpdate) (*Product, error) {
	var product Product
	if err := c.do(http.MethodPut, "/products/"+url.PathEscape(id), update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a product by its ID.
func (c *Client) DeleteProduct(id string) error {
	return c.do(http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// ToggleStatus flips a product's enabled flag.
func (c *Client) ToggleStatus(id string) (*Product, error) {
	var product Product
	if err := c.do(http.MethodPut, "/products/"+url.PathEscape(id)+"/toggle-status", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetPublishStatus sets a product's publish status ("published" or "draft").
func (c *Client) SetPublishStatus(id, status string) (*Product, error) {
	body := map[string]string{"status": status}
	var product Product
	if err := c.do(http.MethodPut, "/products/"+url.PathEscape(id)+"/publish-status", body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetSoldQuantity sets a product's sold counter.
func (c *Client) SetSoldQuantity(id string, soldQuantity int) (*Product, error) {
	body := map[string]int{"soldQuantity": soldQuantity}
	var product Product
	if err := c.do(http.MethodPut, "/products/"+url.PathEscape(id)+"/sold", body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetStockLogs fetches every stock log entry, newest first.
func (c *Client) GetStockLogs() ([]StockLog, error) {
	var logs []StockLog
	if err := c.do(http.MethodGet, "/stock-logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
