package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

func newProduct(moq int32) productResponse.Product {
	return productResponse.Product{
		ID:                   uuid.New(),
		Name:                 "product",
		MainPrice:            decimal.NewFromInt(10),
		MinimumOrderQuantity: moq,
		MiniAppType:          storeResponse.StoreTypeRetail,
	}
}

func newUnmannedProduct(moq int32, displayStock int32) productResponse.Product {
	product := newProduct(moq)
	product.MiniAppType = storeResponse.StoreTypeUnmanned
	product.DisplayStock = &displayStock
	return product
}

func TestAddProduct(t *testing.T) {
	t.Run("given first add should start at one", func(t *testing.T) {
		sess := NewSession(uuid.New())

		quantity, err := sess.AddProduct(newProduct(1))

		assert.NoError(t, err)
		assert.EqualValues(t, 1, quantity)
	})

	t.Run("given first add with moq should start at moq", func(t *testing.T) {
		sess := NewSession(uuid.New())

		quantity, err := sess.AddProduct(newProduct(4))

		assert.NoError(t, err)
		assert.EqualValues(t, 4, quantity)
	})

	t.Run("given repeated add should increment by one", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(4)

		_, err := sess.AddProduct(product)
		assert.NoError(t, err)
		quantity, err := sess.AddProduct(product)

		assert.NoError(t, err)
		assert.EqualValues(t, 5, quantity)
	})

	t.Run("given concurrent adds should count every one", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(1)

		addCount := 50
		wg := sync.WaitGroup{}
		wg.Add(addCount)
		for range addCount {
			go func() {
				defer wg.Done()
				_, err := sess.AddProduct(product)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		items := sess.Items()
		assert.Len(t, items, 1)
		assert.EqualValues(t, addCount, items[0].Quantity)
	})
}

func TestAddProductWithQuantity(t *testing.T) {
	t.Run("given first add below moq should start at moq", func(t *testing.T) {
		sess := NewSession(uuid.New())

		quantity, err := sess.AddProductWithQuantity(newProduct(6), 2)

		assert.NoError(t, err)
		assert.EqualValues(t, 6, quantity)
	})

	t.Run("given first add above moq should keep requested quantity", func(t *testing.T) {
		sess := NewSession(uuid.New())

		quantity, err := sess.AddProductWithQuantity(newProduct(2), 5)

		assert.NoError(t, err)
		assert.EqualValues(t, 5, quantity)
	})

	t.Run("given existing item should add requested quantity", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(1)

		_, err := sess.AddProductWithQuantity(product, 3)
		assert.NoError(t, err)
		quantity, err := sess.AddProductWithQuantity(product, 4)

		assert.NoError(t, err)
		assert.EqualValues(t, 7, quantity)
	})
}

func TestStockCeiling(t *testing.T) {
	t.Run("given unmanned product should reject add beyond display stock", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newUnmannedProduct(1, 5)

		for range 5 {
			_, err := sess.AddProduct(product)
			assert.NoError(t, err)
		}
		quantity, err := sess.AddProduct(product)

		assert.ErrorIs(t, err, inErrors.ErrStockInsufficient)
		assert.EqualValues(t, 0, quantity)

		items := sess.Items()
		assert.Len(t, items, 1)
		assert.EqualValues(t, 5, items[0].Quantity)
	})

	t.Run("given unmanned product with moq above stock should reject first add", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newUnmannedProduct(4, 3)

		_, err := sess.AddProduct(product)

		assert.ErrorIs(t, err, inErrors.ErrStockInsufficient)
		assert.Empty(t, sess.Items())
	})

	t.Run("given retail product should ignore display stock", func(t *testing.T) {
		sess := NewSession(uuid.New())
		displayStock := int32(2)
		product := newProduct(1)
		product.DisplayStock = &displayStock

		for range 10 {
			_, err := sess.AddProduct(product)
			assert.NoError(t, err)
		}

		items := sess.Items()
		assert.EqualValues(t, 10, items[0].Quantity)
	})
}

func TestRemoveProduct(t *testing.T) {
	t.Run("given quantity above moq should decrement by one", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(4)
		_, err := sess.AddProduct(product)
		assert.NoError(t, err)
		_, err = sess.AddProduct(product)
		assert.NoError(t, err)

		quantity, removed, err := sess.RemoveProduct(product.ID)

		assert.NoError(t, err)
		assert.False(t, removed)
		assert.EqualValues(t, 4, quantity)
	})

	t.Run("given quantity at moq should remove item entirely", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(4)
		_, err := sess.AddProduct(product)
		assert.NoError(t, err)

		quantity, removed, err := sess.RemoveProduct(product.ID)

		assert.NoError(t, err)
		assert.True(t, removed)
		assert.EqualValues(t, 0, quantity)
		assert.Empty(t, sess.Items())
	})

	t.Run("given quantity of one should remove item entirely", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(1)
		_, err := sess.AddProduct(product)
		assert.NoError(t, err)

		_, removed, err := sess.RemoveProduct(product.ID)

		assert.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("given absent product should return item not found", func(t *testing.T) {
		sess := NewSession(uuid.New())

		_, _, err := sess.RemoveProduct(uuid.New())

		assert.ErrorIs(t, err, inErrors.ErrItemNotFound)
	})
}

func TestRemoveAllOfProduct(t *testing.T) {
	t.Run("given item with high quantity should remove it entirely", func(t *testing.T) {
		sess := NewSession(uuid.New())
		product := newProduct(4)
		_, err := sess.AddProductWithQuantity(product, 10)
		assert.NoError(t, err)

		err = sess.RemoveAllOfProduct(product.ID)

		assert.NoError(t, err)
		assert.Empty(t, sess.Items())
	})

	t.Run("given absent product should return item not found", func(t *testing.T) {
		sess := NewSession(uuid.New())

		err := sess.RemoveAllOfProduct(uuid.New())

		assert.ErrorIs(t, err, inErrors.ErrItemNotFound)
	})
}

func TestSessionItems(t *testing.T) {
	t.Run("given adds should keep insertion order", func(t *testing.T) {
		sess := NewSession(uuid.New())
		first := newProduct(1)
		second := newProduct(1)
		_, err := sess.AddProduct(first)
		assert.NoError(t, err)
		_, err = sess.AddProduct(second)
		assert.NoError(t, err)

		items := sess.Items()

		assert.Len(t, items, 2)
		assert.Equal(t, first.ID, items[0].ProductID)
		assert.Equal(t, second.ID, items[1].ProductID)
	})

	t.Run("given empty session restore should load snapshot", func(t *testing.T) {
		sess := NewSession(uuid.New())
		restored := newProduct(1)

		sess.Restore([]Item{{ProductID: restored.ID, Quantity: 3, Product: restored}})

		items := sess.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, restored.ID, items[0].ProductID)
		assert.EqualValues(t, 3, items[0].Quantity)
	})

	t.Run("given mutation before restore should keep the mutation", func(t *testing.T) {
		sess := NewSession(uuid.New())
		added := newProduct(1)
		_, err := sess.AddProduct(added)
		assert.NoError(t, err)

		snapshot := newProduct(1)
		sess.Restore([]Item{{ProductID: snapshot.ID, Quantity: 2, Product: snapshot}})

		items := sess.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, added.ID, items[0].ProductID)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("given new shopper should create empty session", func(t *testing.T) {
		registry := NewRegistry()
		userId := uuid.New()

		sess, existed := registry.Get(userId)

		assert.False(t, existed)
		assert.Equal(t, userId, sess.UserId())
		assert.Empty(t, sess.Items())
	})

	t.Run("given known shopper should return same session", func(t *testing.T) {
		registry := NewRegistry()
		userId := uuid.New()

		first, _ := registry.Get(userId)
		second, existed := registry.Get(userId)

		assert.True(t, existed)
		assert.Same(t, first, second)
	})

	t.Run("given cleared session should stay registered", func(t *testing.T) {
		registry := NewRegistry()
		userId := uuid.New()
		sess, _ := registry.Get(userId)
		_, err := sess.AddProduct(newProduct(1))
		assert.NoError(t, err)

		sess.Clear()
		same, existed := registry.Get(userId)

		assert.True(t, existed)
		assert.Same(t, sess, same)
		assert.Empty(t, same.Items())
	})
}
