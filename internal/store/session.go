package store

import (
	"sync"
	"time"

	"atelier/internal/domain"
)

const (
	FreeShippingThreshold = 2000.0
	StandardShipping      = 50.0
)

// Session is one shopper's cart, wishlist and profile. Nothing here is persisted.
type Session struct {
	mu       sync.Mutex
	cart     []domain.CartItem
	wishlist []domain.Product
	user     *domain.UserProfile
	seen     time.Time
}

func newSession() *Session {
	return &Session{
		cart:     []domain.CartItem{},
		wishlist: []domain.Product{},
		seen:     time.Now(),
	}
}

// GuestSession returns an empty session that no store tracks. It serves reads from shoppers
// who have not written anything yet.
func GuestSession() *Session {
	return newSession()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.seen = time.Now()
	s.mu.Unlock()
}

func (s *Session) lastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

// AddToCart adds one unit of product in the given size and color.
// An existing line with the same (id, size, color) has its quantity incremented.
// Size and color are not checked against the product's options here.
func (s *Session) AddToCart(product domain.Product, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].Matches(product.ID, size, color) {
			s.cart[i].Quantity++
			return
		}
	}

	s.cart = append(s.cart, domain.CartItem{
		Product:       product,
		Quantity:      1,
		SelectedSize:  size,
		SelectedColor: color,
	})
}

// RemoveFromCart drops the line keyed by (id, size, color). Missing lines are ignored.
func (s *Session) RemoveFromCart(id, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart[:0]
	for _, item := range s.cart {
		if !item.Matches(id, size, color) {
			kept = append(kept, item)
		}
	}
	s.cart = kept
}

// Cart returns a copy of the cart lines in insertion order
func (s *Session) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// Totals computes subtotal, shipping and total. Shipping is free above
// FreeShippingThreshold and on an empty cart.
func (s *Session) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var totals domain.CartTotals
	for i := range s.cart {
		totals.Subtotal += s.cart[i].LineTotal()
		totals.Count += s.cart[i].Quantity
	}

	if totals.Count > 0 && totals.Subtotal <= FreeShippingThreshold {
		totals.Shipping = StandardShipping
	}
	totals.Total = totals.Subtotal + totals.Shipping
	return totals
}

// ToggleWishlist adds the product if absent and removes it if present.
// It reports whether the product is wishlisted afterwards.
func (s *Session) ToggleWishlist(product domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.wishlist {
		if p.ID == product.ID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return false
		}
	}

	s.wishlist = append(s.wishlist, product)
	return true
}

// Wishlist returns a copy of the wishlist
func (s *Session) Wishlist() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// IsWishlisted reports whether product id is on the wishlist
func (s *Session) IsWishlisted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.wishlist {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Login signs the shopper in with the sample profile. No credentials are checked.
func (s *Session) Login() domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := SampleUser()
	s.user = &user
	return user
}

// Logout clears the profile
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
}

// User returns the signed-in profile, if any
func (s *Session) User() (domain.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return domain.UserProfile{}, false
	}
	return *s.user, true
}

// SampleUser is the fixed profile handed out on login
func SampleUser() domain.UserProfile {
	return domain.UserProfile{
		Name:  "Julian Vermeni",
		Email: "julian@vermeni.luxury",
		Addresses: []domain.Address{
			{
				ID:      "1",
				Label:   "Primary Residence",
				Street:  "15 Place Vendôme",
				City:    "Paris",
				Zip:     "75001",
				Country: "France",
			},
		},
		OrderHistory: []domain.Order{},
	}
}
