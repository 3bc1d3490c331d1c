package cart

import (
	"context"
	"errors"
	"math"
	"sync"

	"storefront/core/internal/domain"
	"storefront/core/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Store owns the cart: an insertion-ordered collection of entries, at most one
// per product id. Every mutation is serialized in full to the storage port;
// persistence failures are logged and swallowed so the in-memory cart keeps
// working for the session.
type Store struct {
	store storage.Store
	key   string

	mu      sync.RWMutex
	entries []domain.CartEntry
}

// NewStore restores the cart persisted under key. A missing or corrupted
// persisted form yields an empty cart, never an error.
func NewStore(ctx context.Context, store storage.Store, key string) *Store {
	s := &Store{
		store: store,
		key:   key,
	}

	data, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warnf("Failed to load persisted cart, starting empty: %v", err)
		}
		return s
	}

	entries, err := DecodeEntries(data)
	if err != nil {
		log.Warnf("Discarding corrupted persisted cart: %v", err)
		return s
	}

	s.entries = entries
	log.Debugf("Restored cart with %d entries", len(entries))
	return s
}

// Add appends a new entry with quantity 1, or increments the quantity when the
// product is already in the cart.
func (s *Store) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	if i := s.indexOf(product.ID); i != -1 {
		s.entries[i].Quantity++
	} else {
		s.entries = append(s.entries, domain.CartEntry{Product: product, Quantity: 1})
	}
	s.mu.Unlock()

	log.Debugf("Added product %d (%s) to cart", product.ID, product.Title)
	s.persist(ctx)
}

// Remove deletes the entry for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID int) {
	s.mu.Lock()
	changed := false
	for i := range s.entries {
		if s.entries[i].Product.ID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx)
	}
}

// SetQuantity sets the entry's quantity exactly. A quantity below 1 removes the
// entry; an unknown product id is a no-op.
func (s *Store) SetQuantity(ctx context.Context, productID, quantity int) {
	if quantity < 1 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	i := s.indexOf(productID)
	if i == -1 {
		s.mu.Unlock()
		return
	}
	s.entries[i].Quantity = quantity
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *Store) IsInCart(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(productID) != -1
}

// Entries returns a copy of the cart in insertion order.
func (s *Store) Entries() []domain.CartEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.CartEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// TotalItems is the sum of all entry quantities, recomputed from the entries on
// every call so it can never drift from the cart contents.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, e := range s.entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice sums price*quantity over all entries. Entries with a missing or
// NaN price contribute zero; that guards against malformed persisted data.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, e := range s.entries {
		price := e.Product.Price
		if price == 0 || math.IsNaN(price) {
			continue
		}
		total += price * float64(e.Quantity)
	}
	return total
}

// indexOf must be called with the mutex held.
func (s *Store) indexOf(productID int) int {
	for i := range s.entries {
		if s.entries[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	data, err := EncodeEntries(s.entries)
	s.mu.RUnlock()

	if err != nil {
		log.Errorf("Failed to encode cart: %v", err)
		return
	}

	if err := s.store.Save(ctx, s.key, data); err != nil {
		log.Errorf("Failed to save cart: %v", err)
	}
}
