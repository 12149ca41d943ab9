package repos

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"storefront/internal/domain"
)

// MemoryStore keeps products and cart items in maps guarded by one mutex.
// It has the same semantics as the SQL repos, including sql.ErrNoRows for absence.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	items    map[string]domain.CartItem // itemID -> item
	byPair   map[pairKey]string         // (user, product) -> itemID
	err      error
}

type pairKey struct{ userID, productID string }

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]domain.Product),
		items:    make(map[string]domain.CartItem),
		byPair:   make(map[pairKey]string),
	}
}

// FailWith makes every subsequent call return err; nil restores normal operation.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *MemoryStore) Products() *MemoryProducts { return &MemoryProducts{s: s} }
func (s *MemoryStore) Carts() *MemoryCarts { return &MemoryCarts{s: s} }

type MemoryProducts struct{ s *MemoryStore }

func (m *MemoryProducts) List(ctx context.Context) ([]domain.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.err != nil {
		return nil, m.s.err
	}
	out := make([]domain.Product, 0, len(m.s.products))
	for _, p := range m.s.products {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryProducts) Get(ctx context.Context, id string) (domain.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.err != nil {
		return domain.Product{}, m.s.err
	}
	p, ok := m.s.products[id]
	if !ok {
		return domain.Product{}, sql.ErrNoRows
	}
	return p, nil
}

func (m *MemoryProducts) Create(ctx context.Context, p domain.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return m.s.err
	}
	m.s.products[p.ID] = p
	return nil
}

func (m *MemoryProducts) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return m.s.err
	}
	delete(m.s.products, id)
	return nil
}

type MemoryCarts struct{ s *MemoryStore }

func (m *MemoryCarts) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	if m.s.err != nil {
		return nil, m.s.err
	}
	out := []domain.CartItem{}
	for _, it := range m.s.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryCarts) AddOrIncrement(ctx context.Context, id, userID, productID string, qty int) (domain.CartItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return domain.CartItem{}, m.s.err
	}
	key := pairKey{userID, productID}
	if existing, ok := m.s.byPair[key]; ok {
		it := m.s.items[existing]
		if it.Quantity > domain.MaxQuantity-qty {
			return domain.CartItem{}, ErrQuantityLimit
		}
		it.Quantity += qty
		m.s.items[existing] = it
		return it, nil
	}
	if _, ok := m.s.products[productID]; !ok {
		return domain.CartItem{}, sql.ErrNoRows
	}
	it := domain.CartItem{ID: id, UserID: userID, ProductID: productID, Quantity: qty}
	m.s.items[id] = it
	m.s.byPair[key] = id
	return it, nil
}

func (m *MemoryCarts) SetQuantity(ctx context.Context, userID, itemID string, qty int) (domain.CartItem, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return domain.CartItem{}, m.s.err
	}
	it, ok := m.s.items[itemID]
	if !ok || it.UserID != userID {
		return domain.CartItem{}, sql.ErrNoRows
	}
	it.Quantity = qty
	m.s.items[itemID] = it
	return it, nil
}

func (m *MemoryCarts) Delete(ctx context.Context, userID, itemID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return false, m.s.err
	}
	it, ok := m.s.items[itemID]
	if !ok || it.UserID != userID {
		return false, nil
	}
	delete(m.s.items, itemID)
	delete(m.s.byPair, pairKey{it.UserID, it.ProductID})
	return true, nil
}

func (m *MemoryCarts) Clear(ctx context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.err != nil {
		return m.s.err
	}
	for id, it := range m.s.items {
		if it.UserID == userID {
			delete(m.s.items, id)
			delete(m.s.byPair, pairKey{it.UserID, it.ProductID})
		}
	}
	return nil
}
