package service

import (
	"atelier/internal/domain"
	"atelier/internal/store"
)

// CartView is a cart with its totals
type CartView struct {
	Items  []domain.CartItem `json:"items"`
	Totals domain.CartTotals `json:"totals"`
}

// CartService defines the shopper operations on a session
type CartService interface {
	Add(sess *store.Session, productID, size, color string) (CartView, error)
	Remove(sess *store.Session, productID, size, color string) CartView
	View(sess *store.Session) CartView
	ToggleWishlist(sess *store.Session, productID string) (bool, error)
}

type cartService struct {
	catalog CatalogReader
}

// NewCartService creates a new instance of CartService
func NewCartService(catalog CatalogReader) CartService {
	return &cartService{catalog: catalog}
}

// Add puts one unit in the cart after checking the size and color are offered
func (s *cartService) Add(sess *store.Session, productID, size, color string) (CartView, error) {
	product, ok := s.catalog.Product(productID)
	if !ok {
		return CartView{}, ErrProductNotFound
	}
	if !product.HasSize(size) {
		return CartView{}, ErrSizeUnavailable
	}
	if !product.HasColor(color) {
		return CartView{}, ErrColorUnavailable
	}

	sess.AddToCart(product, size, color)
	return s.View(sess), nil
}

func (s *cartService) Remove(sess *store.Session, productID, size, color string) CartView {
	sess.RemoveFromCart(productID, size, color)
	return s.View(sess)
}

func (s *cartService) View(sess *store.Session) CartView {
	return CartView{Items: sess.Cart(), Totals: sess.Totals()}
}

// ToggleWishlist reports whether the product is wishlisted afterwards.
// Pieces that left the catalog can still be removed.
func (s *cartService) ToggleWishlist(sess *store.Session, productID string) (bool, error) {
	product, ok := s.catalog.Product(productID)
	if !ok {
		if sess.IsWishlisted(productID) {
			return sess.ToggleWishlist(domain.Product{ID: productID}), nil
		}
		return false, ErrProductNotFound
	}
	return sess.ToggleWishlist(product), nil
}
