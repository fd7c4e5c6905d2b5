package transport

import (
	"net/http"

	"atelier/internal/domain"
	"atelier/internal/middleware"
	"atelier/internal/service"
	"atelier/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartLineRequest names a cart line by product, size and color
type CartLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// WishlistResponse represents the wishlist after a read or toggle
type WishlistResponse struct {
	Items      []domain.Product `json:"items"`
	Wishlisted *bool            `json:"wishlisted,omitempty"`
}

// ProfileResponse represents the shopper's profile state
type ProfileResponse struct {
	SignedIn bool                `json:"signedIn"`
	User     *domain.UserProfile `json:"user"`
}

// ShopperHandler handles the session-scoped cart, wishlist and profile
type ShopperHandler struct {
	cart   service.CartService
	logger *zap.Logger
}

// NewShopperHandler creates a new ShopperHandler
func NewShopperHandler(cart service.CartService, logger *zap.Logger) *ShopperHandler {
	return &ShopperHandler{
		cart:   cart,
		logger: logger,
	}
}

// RegisterRoutes registers the shopper routes behind the session middleware
func (h *ShopperHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Get("/api/cart", h.GetCart)
		r.Post("/api/cart", h.AddToCart)
		r.Delete("/api/cart", h.RemoveFromCart)

		r.Get("/api/wishlist", h.GetWishlist)
		r.Post("/api/wishlist/{id}", h.ToggleWishlist)

		r.Get("/api/profile", h.GetProfile)
		r.Post("/api/profile/login", h.Login)
		r.Post("/api/profile/logout", h.Logout)
	})
}

func (h *ShopperHandler) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Error("Session missing from context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return sess, true
}

// GetCart returns the cart lines and totals
func (h *ShopperHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.cart.View(sess))
}

// AddToCart adds one unit of the chosen size and color
func (h *ShopperHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CartLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	view, err := h.cart.Add(sess, req.ProductID, req.Size, req.Color)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// RemoveFromCart drops a cart line; unknown lines are ignored
func (h *ShopperHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CartLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cart.Remove(sess, req.ProductID, req.Size, req.Color))
}

// GetWishlist returns the wishlisted products
func (h *ShopperHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{Items: sess.Wishlist()})
}

// ToggleWishlist adds or removes the product
func (h *ShopperHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	wishlisted, err := h.cart.ToggleWishlist(sess, chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{
		Items:      sess.Wishlist(),
		Wishlisted: &wishlisted,
	})
}

// GetProfile returns the signed-in profile, if any
func (h *ShopperHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	user, signedIn := sess.User()
	resp := ProfileResponse{SignedIn: signedIn}
	if signedIn {
		resp.User = &user
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Login signs the shopper in with the sample profile
func (h *ShopperHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	user := sess.Login()
	middleware.RespondWithJSON(w, http.StatusOK, ProfileResponse{SignedIn: true, User: &user})
}

// Logout clears the profile
func (h *ShopperHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Logout()
	middleware.RespondWithJSON(w, http.StatusOK, ProfileResponse{SignedIn: false})
}
