package store

import (
	"testing"

	"atelier/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func sampleProduct(id string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Piece " + id,
		Price:    price,
		Category: domain.CategoryDresses,
		Sizes:    []string{"2Y", "4Y"},
		Colors:   []string{"Pearl White", "Blush Rose"},
	}
}

// Adding the same (id, size, color) n times yields one line of quantity n
func TestProperty_RepeatedAddIncrementsSingleLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("one line per triple, quantity equals call count", prop.ForAll(
		func(calls int, size string, color string) bool {
			sess := newSession()
			product := sampleProduct("p-1", 120)

			for i := 0; i < calls; i++ {
				sess.AddToCart(product, size, color)
			}

			cart := sess.Cart()
			if len(cart) != 1 {
				t.Logf("FAIL: Expected 1 line, got %d", len(cart))
				return false
			}
			if cart[0].Quantity != calls {
				t.Logf("FAIL: Expected quantity %d, got %d", calls, cart[0].Quantity)
				return false
			}
			return cart[0].SelectedSize == size && cart[0].SelectedColor == color
		},
		gen.IntRange(1, 50),
		gen.OneConstOf("2Y", "4Y", "6Y"),
		gen.OneConstOf("Pearl White", "Blush Rose"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Different sizes or colors of the same product are separate lines
func TestProperty_DistinctTriplesAreDistinctLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lines are keyed by product, size and color", prop.ForAll(
		func(sizes []string) bool {
			sess := newSession()
			product := sampleProduct("p-1", 120)

			distinct := map[string]int{}
			for _, size := range sizes {
				sess.AddToCart(product, size, "Pearl White")
				distinct[size]++
			}

			cart := sess.Cart()
			if len(cart) != len(distinct) {
				t.Logf("FAIL: Expected %d lines, got %d", len(distinct), len(cart))
				return false
			}
			for _, line := range cart {
				if line.Quantity != distinct[line.SelectedSize] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("2Y", "3Y", "4Y", "5Y", "6Y")),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Removing a line twice leaves the cart as the first removal did
func TestProperty_RemoveFromCartIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("second removal is a no-op", prop.ForAll(
		func(otherLines int, removeSize string) bool {
			sess := newSession()
			for i := 0; i < otherLines; i++ {
				sess.AddToCart(sampleProduct("other", 80), "4Y", "Blush Rose")
			}
			sess.AddToCart(sampleProduct("target", 300), "2Y", "Pearl White")

			sess.RemoveFromCart("target", removeSize, "Pearl White")
			afterFirst := sess.Cart()

			sess.RemoveFromCart("target", removeSize, "Pearl White")
			afterSecond := sess.Cart()

			if len(afterFirst) != len(afterSecond) {
				t.Logf("FAIL: Second removal changed cart size %d -> %d", len(afterFirst), len(afterSecond))
				return false
			}
			for i := range afterFirst {
				if afterFirst[i].ID != afterSecond[i].ID || afterFirst[i].Quantity != afterSecond[i].Quantity {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 5),
		gen.OneConstOf("2Y", "4Y"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Toggling the same product twice restores the wishlist
func TestProperty_ToggleWishlistIsAnInvolution(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("toggle twice returns the original wishlist", prop.ForAll(
		func(existing []string, target string) bool {
			sess := newSession()
			seen := map[string]bool{}
			for _, id := range existing {
				if !seen[id] {
					sess.ToggleWishlist(sampleProduct(id, 10))
					seen[id] = true
				}
			}

			before := sess.Wishlist()
			sess.ToggleWishlist(sampleProduct(target, 10))
			sess.ToggleWishlist(sampleProduct(target, 10))
			after := sess.Wishlist()

			if len(before) != len(after) {
				t.Logf("FAIL: Wishlist size changed %d -> %d", len(before), len(after))
				return false
			}
			ids := map[string]bool{}
			for _, p := range after {
				ids[p.ID] = true
			}
			for _, p := range before {
				if !ids[p.ID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("a", "b", "c", "d")),
		gen.OneConstOf("a", "b", "e"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestTotals_ShippingThreshold(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		shipping float64
		total    float64
	}{
		{name: "empty cart", prices: nil, shipping: 0, total: 0},
		{name: "below threshold", prices: []float64{980}, shipping: 50, total: 1030},
		{name: "exactly threshold", prices: []float64{1000, 1000}, shipping: 50, total: 2050},
		{name: "above threshold", prices: []float64{1250, 980}, shipping: 0, total: 2230},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession()
			for i, price := range tt.prices {
				sess.AddToCart(sampleProduct(string(rune('a'+i)), price), "2Y", "Pearl White")
			}

			totals := sess.Totals()
			if totals.Shipping != tt.shipping {
				t.Errorf("Expected shipping %.2f, got %.2f", tt.shipping, totals.Shipping)
			}
			if totals.Total != tt.total {
				t.Errorf("Expected total %.2f, got %.2f", tt.total, totals.Total)
			}
		})
	}
}

func TestLoginLogout(t *testing.T) {
	sess := newSession()

	if _, ok := sess.User(); ok {
		t.Fatal("Expected no user before login")
	}

	user := sess.Login()
	if user.Email != "julian@vermeni.luxury" || len(user.Addresses) != 1 {
		t.Errorf("Unexpected sample user: %+v", user)
	}
	if got, ok := sess.User(); !ok || got.Name != user.Name {
		t.Errorf("Expected signed-in user, got %+v", got)
	}

	sess.Logout()
	if _, ok := sess.User(); ok {
		t.Error("Expected no user after logout")
	}
}
