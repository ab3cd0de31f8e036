package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testItem(id uuid.UUID, price string, qty, stock int32) CartItem {
	return CartItem{
		ProductID: id,
		Name:      "AquaPure 500",
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		Stock:     stock,
	}
}

func TestCartAddItem(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	tests := []struct {
		name     string
		existing []CartItem
		add      CartItem
		wantQty  int32
		wantLen  int
	}{
		{
			name:    "new item appended",
			add:     testItem(productA, "10", 2, 5),
			wantQty: 2,
			wantLen: 1,
		},
		{
			name:     "existing item quantities merge",
			existing: []CartItem{testItem(productA, "10", 2, 5)},
			add:      testItem(productA, "10", 2, 5),
			wantQty:  4,
			wantLen:  1,
		},
		{
			name:     "merged quantity clamped to stock",
			existing: []CartItem{testItem(productA, "10", 4, 5)},
			add:      testItem(productA, "10", 3, 5),
			wantQty:  5,
			wantLen:  1,
		},
		{
			name:    "new item clamped to stock",
			add:     testItem(productA, "10", 9, 5),
			wantQty: 5,
			wantLen: 1,
		},
		{
			name:     "different products stay separate",
			existing: []CartItem{testItem(productA, "10", 1, 5)},
			add:      testItem(productB, "20", 1, 3),
			wantQty:  1,
			wantLen:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{Items: tt.existing}
			cart.AddItem(tt.add)

			if len(cart.Items) != tt.wantLen {
				t.Fatalf("len(items) = %d, want %d", len(cart.Items), tt.wantLen)
			}
			var got int32
			for _, it := range cart.Items {
				if it.ProductID == tt.add.ProductID {
					got = it.Quantity
				}
			}
			if got != tt.wantQty {
				t.Errorf("quantity = %d, want %d", got, tt.wantQty)
			}
		})
	}
}

func TestCartUpdateQuantityClampsToStock(t *testing.T) {
	// Cart [{A, price 10, qty 2, stock 5}] -> UpdateQuantity(A, 10) -> qty 5, total 50.
	productA := uuid.New()
	cart := &Cart{Items: []CartItem{testItem(productA, "10", 2, 5)}}

	if !cart.UpdateQuantity(productA, 10) {
		t.Fatal("expected item to be found")
	}
	if got := cart.Items[0].Quantity; got != 5 {
		t.Errorf("quantity = %d, want 5", got)
	}
	if total := cart.TotalPrice(); !total.Equal(decimal.RequireFromString("50")) {
		t.Errorf("total = %s, want 50", total)
	}
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	productA := uuid.New()
	cart := &Cart{Items: []CartItem{testItem(productA, "10", 2, 5)}}

	if !cart.UpdateQuantity(productA, 0) {
		t.Fatal("expected item to be found")
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestCartUpdateQuantityMissingProduct(t *testing.T) {
	cart := &Cart{}
	if cart.UpdateQuantity(uuid.New(), 3) {
		t.Error("expected false for unknown product")
	}
}

func TestCartQuantityInvariantHolds(t *testing.T) {
	// After any mix of adds and updates, every quantity sits in [1, stock]
	// and zero-quantity lines are gone.
	productA := uuid.New()
	productB := uuid.New()

	cart := &Cart{}
	cart.AddItem(testItem(productA, "10", 3, 5))
	cart.AddItem(testItem(productB, "24.99", 1, 2))
	cart.AddItem(testItem(productA, "10", 99, 5))
	cart.UpdateQuantity(productB, 7)
	cart.UpdateQuantity(productA, -1)

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
	for _, it := range cart.Items {
		if it.Quantity < 1 || it.Quantity > it.Stock {
			t.Errorf("quantity %d outside [1, %d]", it.Quantity, it.Stock)
		}
	}
}

func TestCartReplaceItems(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	cart := &Cart{Items: []CartItem{testItem(productA, "10", 1, 5)}}

	cart.ReplaceItems([]CartItem{
		testItem(productB, "20", 10, 4), // clamped to 4
		testItem(productA, "10", 0, 5),  // dropped
	})

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
	if cart.Items[0].ProductID != productB || cart.Items[0].Quantity != 4 {
		t.Errorf("unexpected items: %+v", cart.Items)
	}
}

func TestCartTotals(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	cart := &Cart{Items: []CartItem{
		testItem(productA, "10.50", 2, 5),
		testItem(productB, "199.99", 1, 3),
	}}

	if got := cart.TotalItems(); got != 3 {
		t.Errorf("TotalItems() = %d, want 3", got)
	}
	want := decimal.RequireFromString("220.99")
	if got := cart.TotalPrice(); !got.Equal(want) {
		t.Errorf("TotalPrice() = %s, want %s", got, want)
	}

	cart.Clear()
	if !cart.TotalPrice().Equal(decimal.Zero) || cart.TotalItems() != 0 {
		t.Error("expected zero totals after Clear")
	}
}
