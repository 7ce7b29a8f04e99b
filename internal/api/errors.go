package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pocket-shop/internal/api/middleware"
	"github.com/example/pocket-shop/internal/command"
	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"github.com/example/pocket-shop/internal/domain/user"
	"go.uber.org/zap"
)

const genericErrorMessage = "An error occurred. Please try again."

// ValidationResponse carries per-field messages for inline display
type ValidationResponse struct {
	Errors map[string]string `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors onto status codes and user-facing messages.
func respondDomainError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verr *user.ValidationError
	var qerr *cart.QuantityError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, ValidationResponse{Errors: verr.Fields})
	case errors.Is(err, user.ErrNoUserData):
		respondJSONError(w, "No user data found.", http.StatusUnauthorized)
	case errors.Is(err, user.ErrInvalidEmail):
		respondJSONError(w, "Invalid email.", http.StatusUnauthorized)
	case errors.Is(err, user.ErrInvalidPassword):
		respondJSONError(w, "Invalid password.", http.StatusUnauthorized)
	case errors.As(err, &qerr):
		respondJSONError(w, qerr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, product.ErrProductNotFound):
		respondJSONError(w, "Product not found", http.StatusNotFound)
	case errors.Is(err, command.ErrItemNotInCart):
		respondJSONError(w, "Item not in cart", http.StatusNotFound)
	case errors.Is(err, user.ErrStorageUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		respondJSONError(w, genericErrorMessage, http.StatusServiceUnavailable)
	default:
		logger.Error("Unexpected error",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		respondJSONError(w, genericErrorMessage, http.StatusInternalServerError)
	}
}
