package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stok/pkg/client"
)

func newListingServer(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		json.NewEncoder(w).Encode(client.ProductsResponse{
			Products:   []client.Product{{ID: "p-1", Name: "Kalem"}},
			Total:      1,
			Page:       1,
			TotalPages: 1,
		})
	}))
}

func TestProductStore_RefreshFetchesImmediately(t *testing.T) {
	var requests int32
	server := newListingServer(t, &requests)
	defer server.Close()

	store := client.NewProductStore(client.New(server.URL))
	store.Refresh()

	state := store.State()
	assert.NoError(t, state.Err)
	assert.Len(t, state.Products, 1)
	assert.Equal(t, int64(1), state.Total)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestProductStore_DebouncesRapidChanges(t *testing.T) {
	var requests int32
	server := newListingServer(t, &requests)
	defer server.Close()

	store := client.NewProductStore(client.New(server.URL))

	// Simulates fast typing: three changes inside the debounce window must
	// collapse into a single request.
	store.SetSearch("k")
	store.SetSearch("ka")
	store.SetSearch("kal")

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&requests) == 1 && !store.State().Loading
	}, 2*time.Second, 20*time.Millisecond)

	// Quiet period: no further requests fire.
	time.Sleep(2 * client.DefaultDebounce)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))

	state := store.State()
	assert.Equal(t, "kal", state.Search)
	assert.Len(t, state.Products, 1)
}

func TestProductStore_SetSearchResetsPage(t *testing.T) {
	var requests int32
	server := newListingServer(t, &requests)
	defer server.Close()

	store := client.NewProductStore(client.New(server.URL))
	store.SetPage(3)
	assert.Equal(t, 3, store.State().Page)

	store.SetSearch("kalem")
	assert.Equal(t, 1, store.State().Page)
}

func TestProductStore_NotifiesSubscribers(t *testing.T) {
	var requests int32
	server := newListingServer(t, &requests)
	defer server.Close()

	store := client.NewProductStore(client.New(server.URL))

	states := make(chan client.StoreState, 8)
	unsubscribe := store.Subscribe(func(s client.StoreState) {
		states <- s
	})
	defer unsubscribe()

	store.SetSearch("kalem")

	deadline := time.After(2 * time.Second)
	for {
		select {
		case state := <-states:
			if !state.Loading && state.Err == nil && len(state.Products) == 1 {
				return // got the settled state
			}
		case <-deadline:
			t.Fatal("subscriber never saw the fetched state")
		}
	}
}

func TestProductStore_SurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Could not retrieve products"})
	}))
	defer server.Close()

	store := client.NewProductStore(client.New(server.URL))
	store.Refresh()

	state := store.State()
	var apiErr *client.APIError
	assert.ErrorAs(t, state.Err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
