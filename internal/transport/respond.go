package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"pc-park/internal/builder"
	"pc-park/internal/catalog"
	"pc-park/internal/checkout"
	"pc-park/internal/middleware"

	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, catalog.ErrBundleNotFound):
		return http.StatusNotFound, "bundle not found"
	case errors.Is(err, builder.ErrUnknownCategory):
		return http.StatusNotFound, "unknown component category"
	case errors.Is(err, builder.ErrCategoryMismatch):
		return http.StatusUnprocessableEntity, "product does not fit this component category"
	case errors.Is(err, builder.ErrIncompleteBuild):
		return http.StatusConflict, "select all required components first"
	case errors.Is(err, checkout.ErrInvalidCoupon):
		return http.StatusUnprocessableEntity, "invalid coupon code"
	case errors.Is(err, checkout.ErrUnknownShippingMethod):
		return http.StatusUnprocessableEntity, "unknown shipping method"
	case errors.Is(err, checkout.ErrUnknownPaymentMethod):
		return http.StatusUnprocessableEntity, "unknown payment method"
	case errors.Is(err, checkout.ErrPaymentMethodRequired):
		return http.StatusUnprocessableEntity, "payment method is required"
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict, "cart is empty"
	case errors.Is(err, checkout.ErrWrongStep):
		return http.StatusConflict, "operation not allowed at this checkout step"
	}
	return http.StatusInternalServerError, "internal server error"
}

func respondWithDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, checkout.ErrInvalidShippingInfo) {
		if details := middleware.FormatValidationErrors(err); len(details) > 0 {
			middleware.RespondWithValidationErrors(w, details)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid shipping information")
		return
	}

	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.Error(err), zap.Int("status", status))
	}
	middleware.RespondWithError(w, status, message)
}

// decodeRequest decodes and validates the body, writing the error response
// itself. It reports whether the handler should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v any) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func sessionID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (string, bool) {
	id, ok := middleware.GetSessionID(r.Context())
	if !ok {
		logger.Error("Session id not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "session unavailable")
	}
	return id, ok
}
