package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	inErrors "github.com/rmdhfz/minimart/internal/errors"
	productResponse "github.com/rmdhfz/minimart/product/pkg/response"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

// Item is one cart line: a product snapshot taken at first add plus the
// current quantity. Quantity is always >= max(1, MOQ) while the item exists;
// a mutation that would take it below that floor removes the item instead.
type Item struct {
	ProductID uuid.UUID               `json:"product_id"`
	Quantity  int32                   `json:"quantity"`
	Product   productResponse.Product `json:"product"`
	AddedAt   time.Time               `json:"added_at"`
}

// Session holds one shopper's cart. Every mutation runs under the session
// lock so two rapid taps on the same product cannot interleave.
type Session struct {
	mu     sync.Mutex
	userId uuid.UUID
	items  []Item
}

func NewSession(userId uuid.UUID) *Session {
	return &Session{userId: userId, items: []Item{}}
}

func (s *Session) UserId() uuid.UUID {
	return s.userId
}

func moqFloor(product productResponse.Product) int32 {
	if product.MinimumOrderQuantity > 1 {
		return product.MinimumOrderQuantity
	}
	return 1
}

// tracksStock reports whether stock limits apply. Only the unmanned-store
// mini-app enforces display stock; every other type treats it as unlimited.
func tracksStock(product productResponse.Product) bool {
	return product.MiniAppType == storeResponse.StoreTypeUnmanned &&
		product.DisplayStock != nil
}

func (s *Session) find(productId uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ProductID == productId {
			return i
		}
	}
	return -1
}

// AddProduct adds one unit of the product. A first add starts at the MOQ
// floor; a repeated add increments by one. Returns the resulting quantity.
func (s *Session) AddProduct(product productResponse.Product) (int32, error) {
	return s.AddProductWithQuantity(product, 1)
}

// AddProductWithQuantity adds the given number of units. A first add starts
// at max(quantity, MOQ floor). Fails with ErrStockInsufficient when stock is
// tracked and the resulting quantity would exceed it; the cart is unchanged
// on failure.
func (s *Session) AddProductWithQuantity(
	product productResponse.Product,
	quantity int32,
) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(product.ID)
	next := quantity
	if i >= 0 {
		next = s.items[i].Quantity + quantity
	} else if floor := moqFloor(product); next < floor {
		next = floor
	}

	if tracksStock(product) && next > *product.DisplayStock {
		return 0, inErrors.ErrStockInsufficient
	}

	if i >= 0 {
		s.items[i].Quantity = next
		return next, nil
	}
	s.items = append(s.items, Item{
		ProductID: product.ID,
		Quantity:  next,
		Product:   product,
		AddedAt:   time.Now(),
	})
	return next, nil
}

// RemoveProduct decrements the item by one. When the decrement would fall
// below max(1, MOQ) the item is removed entirely. Returns the remaining
// quantity and whether the item was removed.
func (s *Session) RemoveProduct(productId uuid.UUID) (int32, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productId)
	if i < 0 {
		return 0, false, inErrors.ErrItemNotFound
	}

	if s.items[i].Quantity-1 < moqFloor(s.items[i].Product) {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return 0, true, nil
	}
	s.items[i].Quantity--
	return s.items[i].Quantity, false, nil
}

// RemoveAllOfProduct removes the item regardless of quantity or MOQ.
func (s *Session) RemoveAllOfProduct(productId uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productId)
	if i < 0 {
		return inErrors.ErrItemNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
}

// Items returns a copy of the cart lines in insertion order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Restore loads a persisted snapshot into an empty session. A session that
// already holds items keeps them; a mutation that landed while the snapshot
// was being fetched must not be overwritten by stale data.
func (s *Session) Restore(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 {
		return
	}
	s.items = make([]Item, len(items))
	copy(s.items, items)
}

// Registry hands out one session per shopper, creating it on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[uuid.UUID]*Session{}}
}

// Get returns the shopper's session, creating an empty one if absent. The
// second return reports whether the session already existed.
func (r *Registry) Get(userId uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userId]
	if !ok {
		s = NewSession(userId)
		r.sessions[userId] = s
	}
	return s, ok
}
