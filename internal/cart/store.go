package cart

import (
	"log/slog"
	"sync"
)

const (
	ItemTypeIndividual = "individual"
	ItemTypeBundle     = "bundle"
)

// Item is one purchasable line in a cart. ID is unique per line, not per
// product: re-adding an existing ID increments its quantity.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Type     string  `json:"type"`
	Quantity int     `json:"quantity"`
}

// Subscriber is called with a snapshot of the cart after every mutation.
type Subscriber func(items []Item)

// Store owns one cart's line items in insertion order. Every mutation
// persists through the injected Storage and notifies subscribers.
type Store struct {
	mu      sync.Mutex
	items   []Item
	storage Storage
	subs    []Subscriber
}

// NewStore loads any previously persisted cart from storage. A slot that
// cannot be read starts the cart empty rather than failing.
func NewStore(storage Storage) *Store {
	items, err := storage.Load()
	if err != nil {
		slog.Warn("cart load failed, starting empty", "error", err)
		items = nil
	}
	return &Store{
		items:   items,
		storage: storage,
	}
}

// AddItem appends a new line, or increments quantity when a line with the
// same ID already exists. Quantities below 1 are treated as 1.
func (s *Store) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	s.finishMutation()
}

// RemoveItem deletes the line with the given ID. Absent IDs are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.finishMutation()
}

// UpdateQuantity sets the line's quantity. Zero or negative removes the
// line entirely.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.finishMutation()
}

// Clear empties the cart, used after a confirmed order.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.finishMutation()
}

// Items returns a snapshot copy in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// finishMutation persists and notifies with the post-mutation snapshot.
// Called with the lock held; releases it.
func (s *Store) finishMutation() {
	snapshot := s.snapshotLocked()
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if err := s.storage.Save(snapshot); err != nil {
		slog.Warn("cart persist failed", "error", err)
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}
