package transport

import (
	"errors"
	"net/http"

	"atelier/internal/middleware"
	"atelier/internal/service"
	"atelier/internal/store"

	"go.uber.org/zap"
)

// respondWithServiceError maps service and store errors onto the error envelope.
// Failed remote writes answer 502 with the store's message so the console can alert it.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if middleware.IsValidationError(err) {
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return
	}

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSectionNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidSort),
		errors.Is(err, service.ErrSizeUnavailable),
		errors.Is(err, service.ErrColorUnavailable),
		errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrDuplicateSection),
		errors.Is(err, service.ErrDuplicateOrder),
		errors.Is(err, service.ErrNoFiles):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageNotEnabled):
		middleware.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, store.ErrSyncFailed):
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondWithDecodeError answers a body that failed to decode or validate
func respondWithDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
