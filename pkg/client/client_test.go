package client_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"stok/pkg/client"
)

func TestClient_GetProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "kalem", r.URL.Query().Get("search"))

		json.NewEncoder(w).Encode(client.ProductsResponse{
			Products:   []client.Product{{ID: "p-1", Name: "Kalem", Quantity: 40}},
			Total:      11,
			Page:       2,
			TotalPages: 3,
		})
	}))
	defer server.Close()

	c := client.New(server.URL)
	resp, err := c.GetProducts(2, 5, "kalem")

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Products, 1)
	assert.Equal(t, "Kalem", resp.Products[0].Name)
}

func TestClient_AddProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/add-product", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input client.ProductInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Kalem", input.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.Product{ID: "p-1", Name: input.Name, Quantity: input.Quantity, Price: input.Price, Status: "published", IsEnabled: true})
	}))
	defer server.Close()

	c := client.New(server.URL)
	product, err := c.AddProduct(client.ProductInput{Name: "Kalem", Quantity: 100, Unit: "adet", Tag: "kırtasiye", Price: 5})

	assert.NoError(t, err)
	assert.Equal(t, "p-1", product.ID)
	assert.True(t, product.IsEnabled)
}

func TestClient_UpdateProductOmitsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/p-1", r.URL.Path)

		var raw map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		// Only the quantity travels; nil fields must not show up as nulls.
		assert.Len(t, raw, 1)
		assert.Contains(t, raw, "quantity")

		json.NewEncoder(w).Encode(client.Product{ID: "p-1", Name: "Kalem", Quantity: 40})
	}))
	defer server.Close()

	quantity := 40
	c := client.New(server.URL)
	product, err := c.UpdateProduct("p-1", client.ProductUpdate{Quantity: &quantity})

	assert.NoError(t, err)
	assert.Equal(t, 40, product.Quantity)
}

func TestClient_ServerErrorsBecomeAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "product with ID p-9 not found"})
	}))
	defer server.Close()

	c := client.New(server.URL)
	_, err := c.UpdateProduct("p-9", client.ProductUpdate{})

	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "product with ID p-9 not found", apiErr.Message)
	assert.Equal(t, "product with ID p-9 not found", err.Error())
}

func TestClient_TransportFailuresBecomeNetworkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := client.New(server.URL)
	_, err := c.GetProducts(1, 10, "")

	var netErr *client.NetworkError
	assert.ErrorAs(t, err, &netErr)
	// The user-facing message hides the transport detail...
	assert.Equal(t, "could not reach the stock server", err.Error())
	// ...but the cause stays reachable for logging.
	assert.Error(t, errors.Unwrap(netErr))
}

func TestClient_DeleteAndStockLogs(t *testing.T) {
	deleted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/products/p-1":
			deleted = true
			json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted"})
		case r.Method == http.MethodGet && r.URL.Path == "/stock-logs":
			json.NewEncoder(w).Encode([]client.StockLog{
				{ID: "l-1", ProductID: "p-1", ProductName: "Kalem", PreviousQuantity: 100, NewQuantity: 40, OperationType: "decrease"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := client.New(server.URL)
	assert.NoError(t, c.DeleteProduct("p-1"))
	assert.True(t, deleted)

	logs, err := c.GetStockLogs()
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "decrease", logs[0].OperationType)
}

func TestClient_ToggleAndPublishStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/p-1/toggle-status":
			json.NewEncoder(w).Encode(client.Product{ID: "p-1", IsEnabled: false, Status: "draft"})
		case "/products/p-1/publish-status":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(client.Product{ID: "p-1", Status: body["status"]})
		case "/products/p-1/sold":
			var body map[string]int
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			json.NewEncoder(w).Encode(client.Product{ID: "p-1", SoldQuantity: body["soldQuantity"]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := client.New(server.URL)

	toggled, err := c.ToggleStatus("p-1")
	assert.NoError(t, err)
	assert.False(t, toggled.IsEnabled)
	assert.Equal(t, "draft", toggled.Status)

	published, err := c.SetPublishStatus("p-1", "published")
	assert.NoError(t, err)
	assert.Equal(t, "published", published.Status)

	sold, err := c.SetSoldQuantity("p-1", 9)
	assert.NoError(t, err)
	assert.Equal(t, 9, sold.SoldQuantity)
}
