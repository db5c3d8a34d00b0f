package cart

import (
	"errors"
	"math"
	"testing"
)

type recordingStorage struct {
	loadItems []Item
	loadErr   error
	saves     [][]Item
}

func (s *recordingStorage) Save(items []Item) error {
	s.saves = append(s.saves, items)
	return nil
}

func (s *recordingStorage) Load() ([]Item, error) {
	return s.loadItems, s.loadErr
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddItemMergesByID(t *testing.T) {
	store := NewStore(&recordingStorage{})

	store.AddItem(Item{ID: "x", Name: "Lab Badge", Price: 5, Quantity: 1})
	store.AddItem(Item{ID: "x", Name: "Lab Badge", Price: 5, Quantity: 1})

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if !almostEqual(store.TotalPrice(), 10) {
		t.Fatalf("expected total 10, got %v", store.TotalPrice())
	}
}

func TestAddItemQuantityHandling(t *testing.T) {
	t.Run("provided quantities sum", func(t *testing.T) {
		store := NewStore(&recordingStorage{})
		store.AddItem(Item{ID: "a", Price: 1, Quantity: 2})
		store.AddItem(Item{ID: "a", Price: 1, Quantity: 3})
		if got := store.Items()[0].Quantity; got != 5 {
			t.Fatalf("expected quantity 5, got %d", got)
		}
	})

	t.Run("zero quantity treated as 1", func(t *testing.T) {
		store := NewStore(&recordingStorage{})
		store.AddItem(Item{ID: "a", Price: 1})
		if got := store.Items()[0].Quantity; got != 1 {
			t.Fatalf("expected quantity 1, got %d", got)
		}
	})
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	store := NewStore(&recordingStorage{})
	store.AddItem(Item{ID: "a", Quantity: 1})
	store.AddItem(Item{ID: "b", Quantity: 1})
	store.AddItem(Item{ID: "a", Quantity: 1})
	store.AddItem(Item{ID: "c", Quantity: 1})

	items := store.Items()
	want := []string{"a", "b", "c"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, items[i].ID)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantItems int
		wantQty   int
	}{
		{name: "positive sets quantity", quantity: 3, wantItems: 1, wantQty: 3},
		{name: "zero removes line", quantity: 0, wantItems: 0},
		{name: "negative removes line", quantity: -5, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(&recordingStorage{})
			store.AddItem(Item{ID: "a", Price: 2, Quantity: 1})

			store.UpdateQuantity("a", tt.quantity)

			items := store.Items()
			if len(items) != tt.wantItems {
				t.Fatalf("expected %d items, got %d", tt.wantItems, len(items))
			}
			if tt.wantItems > 0 && items[0].Quantity != tt.wantQty {
				t.Fatalf("expected quantity %d, got %d", tt.wantQty, items[0].Quantity)
			}
		})
	}
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	store := NewStore(&recordingStorage{})
	store.AddItem(Item{ID: "a", Quantity: 1})

	store.RemoveItem("missing")

	if len(store.Items()) != 1 {
		t.Fatal("existing item should survive removal of an absent id")
	}
}

func TestTotals(t *testing.T) {
	store := NewStore(&recordingStorage{})
	store.AddItem(Item{ID: "a", Price: 24.99, Quantity: 2})
	store.AddItem(Item{ID: "b", Price: 10.00, Quantity: 1})

	if got := store.TotalItems(); got != 3 {
		t.Fatalf("expected 3 total items, got %d", got)
	}
	if got := store.TotalPrice(); !almostEqual(got, 59.98) {
		t.Fatalf("expected total price 59.98, got %v", got)
	}
}

func TestClear(t *testing.T) {
	store := NewStore(&recordingStorage{})
	store.AddItem(Item{ID: "a", Price: 5, Quantity: 2})

	store.Clear()

	if len(store.Items()) != 0 || store.TotalItems() != 0 || store.TotalPrice() != 0 {
		t.Fatal("cart should be empty after Clear")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	storage := &recordingStorage{}
	store := NewStore(storage)

	store.AddItem(Item{ID: "a", Quantity: 1})
	store.UpdateQuantity("a", 2)
	store.RemoveItem("a")
	store.Clear()

	if len(storage.saves) != 4 {
		t.Fatalf("expected 4 saves, got %d", len(storage.saves))
	}
}

func TestSubscriberNotifiedOnMutation(t *testing.T) {
	store := NewStore(&recordingStorage{})

	var snapshots [][]Item
	store.Subscribe(func(items []Item) {
		snapshots = append(snapshots, items)
	})

	store.AddItem(Item{ID: "a", Quantity: 1})
	store.UpdateQuantity("a", 4)

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snapshots))
	}
	last := snapshots[len(snapshots)-1]
	if len(last) != 1 || last[0].Quantity != 4 {
		t.Fatalf("last snapshot should reflect the mutation, got %+v", last)
	}
}

func TestNewStoreLoadsPersistedState(t *testing.T) {
	storage := &recordingStorage{
		loadItems: []Item{{ID: "a", Name: "Glasses", Price: 18.99, Quantity: 2}},
	}

	store := NewStore(storage)

	if got := store.TotalItems(); got != 2 {
		t.Fatalf("expected loaded quantity 2, got %d", got)
	}
}

func TestNewStoreLoadFailureStartsEmpty(t *testing.T) {
	storage := &recordingStorage{loadErr: errors.New("disk on fire")}

	store := NewStore(storage)

	if len(store.Items()) != 0 {
		t.Fatal("load failure should start the cart empty")
	}
}
