package client_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stok/pkg/client"
)

func TestCart_UpdateMergesAndRemoves(t *testing.T) {
	cart, err := client.NewCart("")
	assert.NoError(t, err)

	kalem := client.Product{ID: "p-1", Name: "Kalem", Price: 5}
	defter := client.Product{ID: "p-2", Name: "Defter", Price: 12}

	assert.NoError(t, cart.Update(kalem, 2))
	assert.NoError(t, cart.Update(defter, 1))
	assert.NoError(t, cart.Update(kalem, 3)) // merges with the existing line

	items := cart.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, 5, items[0].CartQuantity)
	assert.Equal(t, "Kalem", items[0].Name)

	// Dropping to zero or below removes the line.
	assert.NoError(t, cart.Update(kalem, -5))
	items = cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "Defter", items[0].Name)

	// Removing something that isn't in the cart is a no-op.
	assert.NoError(t, cart.Update(client.Product{ID: "p-9"}, -1))
	assert.Len(t, cart.Items(), 1)

	// A non-positive delta never creates a line.
	assert.NoError(t, cart.Update(client.Product{ID: "p-3"}, 0))
	assert.Len(t, cart.Items(), 1)
}

func TestCart_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	cart, err := client.NewCart(path)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items())

	assert.NoError(t, cart.Update(client.Product{ID: "p-1", Name: "Kalem", Price: 5}, 4))

	reloaded, err := client.NewCart(path)
	assert.NoError(t, err)
	items := reloaded.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "Kalem", items[0].Name)
	assert.Equal(t, 4, items[0].CartQuantity)

	assert.NoError(t, reloaded.Clear())
	cleared, err := client.NewCart(path)
	assert.NoError(t, err)
	assert.Empty(t, cleared.Items())
}

func TestCart_NotifiesSubscribers(t *testing.T) {
	cart, err := client.NewCart("")
	assert.NoError(t, err)

	updates := make(chan []client.CartItem, 4)
	unsubscribe := cart.Subscribe(func(items []client.CartItem) {
		updates <- items
	})

	assert.NoError(t, cart.Update(client.Product{ID: "p-1", Name: "Kalem"}, 2))

	select {
	case items := <-updates:
		assert.Len(t, items, 1)
		assert.Equal(t, 2, items[0].CartQuantity)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not notified")
	}

	unsubscribe()
	assert.NoError(t, cart.Update(client.Product{ID: "p-2", Name: "Defter"}, 1))

	select {
	case <-updates:
		t.Fatal("unsubscribed listener was notified")
	case <-time.After(50 * time.Millisecond):
	}
}
