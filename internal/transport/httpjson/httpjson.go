// Package httpjson concentra los helpers de respuesta que antes estaban
// duplicados por módulo. Con cinco módulos compartiendo la misma taxonomía
// de errores ya conviene el helper común.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-adoption-api/internal/domain/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Message string `json:"message"`
}

// WriteError traduce la taxonomía de apperr a status + {message}.
// Cualquier error fuera de la taxonomía es un 500 con mensaje genérico:
// nunca se filtra el detalle interno (ni hashes, ni errores del store).
func WriteError(w http.ResponseWriter, err error) {
	var (
		validation *apperr.Validation
		duplicate  *apperr.Duplicate
		badRef     *apperr.InvalidReference
		refMissing *apperr.ReferenceNotFound
		notFound   *apperr.NotFound
		forbidden  *apperr.Forbidden
	)

	switch {
	case errors.As(err, &validation),
		errors.As(err, &badRef),
		errors.As(err, &duplicate):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrTokenMissing),
		errors.Is(err, apperr.ErrTokenInvalid),
		errors.Is(err, apperr.ErrIdentityNotFound):
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Message: err.Error()})
	case errors.As(err, &forbidden):
		WriteJSON(w, http.StatusForbidden, errorResponse{Message: err.Error()})
	case errors.As(err, &refMissing), errors.As(err, &notFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Message: "Recurso não encontrado."})
	default:
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Message: "Erro interno do servidor."})
	}
}
