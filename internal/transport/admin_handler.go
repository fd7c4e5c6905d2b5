package transport

import (
	"errors"
	"io"
	"net/http"

	"atelier/internal/auth"
	"atelier/internal/domain"
	"atelier/internal/middleware"
	"atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

// UnlockRequest represents the console passphrase prompt
type UnlockRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

// UnlockResponse carries the admin grant
type UnlockResponse struct {
	Grant string `json:"grant"`
}

// LayoutRequest carries an edited section list
type LayoutRequest struct {
	Sections []domain.HomepageSection `json:"sections" validate:"dive"`
}

// MoveRequest moves the section at Index. Without Sections the published layout is used.
type MoveRequest struct {
	Sections  []domain.HomepageSection `json:"sections"`
	Index     int                      `json:"index" validate:"gte=0"`
	Direction service.Direction        `json:"direction" validate:"required,oneof=up down"`
}

// ToggleRequest optionally carries the section list to edit
type ToggleRequest struct {
	Sections []domain.HomepageSection `json:"sections"`
}

// AdminHandler handles the console
type AdminHandler struct {
	admin  service.AdminService
	gate   auth.Gate
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin service.AdminService, gate auth.Gate, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		gate:   gate,
		logger: logger,
	}
}

// RegisterRoutes registers the console routes. unlockLimiter wraps only the unlock endpoint;
// authMiddleware guards everything else.
func (h *AdminHandler) RegisterRoutes(r chi.Router, unlockLimiter, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.With(unlockLimiter).Post("/unlock", h.Unlock)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireAdmin(h.logger))

			r.Get("/products", h.ListProducts)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)

			r.Get("/layout", h.GetLayout)
			r.Put("/layout", h.PublishLayout)
			r.Post("/layout/move", h.MoveSection)
			r.Post("/layout/{id}/toggle", h.ToggleVisibility)

			r.Post("/initialize", h.Initialize)
			r.Post("/uploads", h.UploadImages)
			r.Post("/refresh", h.Refresh)
		})
	})
}

// Unlock exchanges the shared passphrase for a grant
func (h *AdminHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	grant, err := h.gate.Unlock(r.Context(), req.Passphrase)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassphrase) {
			h.logger.Warn("Console unlock refused", zap.String("remote_addr", r.RemoteAddr))
			middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid atelier credentials.")
			return
		}
		h.logger.Error("Console unlock failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to unlock console")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, UnlockResponse{Grant: grant})
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": h.admin.Products(),
	})
}

// CreateProduct validates the draft before anything is sent to the table store
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var draft service.ProductDraft
	if err := middleware.DecodeAndValidate(r, &draft); err != nil {
		h.logger.Debug("Product draft validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	product, err := h.admin.CreateProduct(r.Context(), draft)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct replaces the product named in the path with the body
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := middleware.DecodeAndValidate(r, &product); err != nil {
		respondWithDecodeError(w, err)
		return
	}
	product.ID = chi.URLParam(r, "id")

	updated, err := h.admin.UpdateProduct(r.Context(), product)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, LayoutRequest{Sections: h.admin.Layout()})
}

// PublishLayout writes the edited sections; on failure the store has already been refreshed
func (h *AdminHandler) PublishLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	grantID, _ := middleware.GetGrantID(r.Context())
	if err := h.admin.PublishLayout(r.Context(), req.Sections); err != nil {
		h.logger.Warn("Layout publish failed", zap.String("grant_id", grantID), zap.Error(err))
		respondWithServiceError(w, h.logger, err)
		return
	}
	h.logger.Info("Layout published", zap.String("grant_id", grantID), zap.Int("sections", len(req.Sections)))

	middleware.RespondWithJSON(w, http.StatusOK, LayoutRequest{Sections: h.admin.Layout()})
}

// MoveSection returns the reordered section list without publishing it
func (h *AdminHandler) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	sections := req.Sections
	if sections == nil {
		sections = h.admin.Layout()
	}

	moved, err := service.MoveSection(sections, req.Index, req.Direction)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LayoutRequest{Sections: moved})
}

// ToggleVisibility returns the section list with one section shown or hidden, without publishing it
func (h *AdminHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if r.ContentLength != 0 {
		if err := middleware.DecodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
			respondWithDecodeError(w, err)
			return
		}
	}

	sections := req.Sections
	if sections == nil {
		sections = h.admin.Layout()
	}

	toggled, err := service.ToggleVisibility(sections, chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LayoutRequest{Sections: toggled})
}

// Initialize seeds the sample catalog and layout
func (h *AdminHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Initialize(r.Context()); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": len(h.admin.Products()),
		"sections": len(h.admin.Layout()),
	})
}

// UploadImages accepts multipart "files" and returns the URLs stored
func (h *AdminHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var files []service.Upload
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			h.logger.Error("Failed to open upload", zap.String("file", header.Filename), zap.Error(err))
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.logger.Error("Failed to read upload", zap.String("file", header.Filename), zap.Error(err))
			continue
		}
		files = append(files, service.Upload{Name: header.Filename, Data: data})
	}

	result, err := h.admin.UploadImages(r.Context(), files)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Refresh reloads the store from the table store
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Refresh(r.Context()); err != nil {
		h.logger.Error("Manual refresh failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": len(h.admin.Products()),
		"sections": len(h.admin.Layout()),
	})
}
