package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"horasextras/models"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorEnvelope{Error: APIError{Code: code, Message: message}})
}

// WriteDomainError maps the domain error taxonomy onto HTTP statuses. The
// wrapped detail becomes the message; unknown errors are reported generically.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", detail(err, models.ErrValidation))
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", detail(err, models.ErrNotFound))
	case errors.Is(err, models.ErrIllegalTransition):
		WriteError(w, http.StatusConflict, "illegal_transition", detail(err, models.ErrIllegalTransition))
	case errors.Is(err, models.ErrInvalidCredentials):
		// Generic on purpose: never reveal which field was wrong.
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "email ou senha inválidos")
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "operação não permitida para o seu perfil")
	default:
		WriteError(w, http.StatusInternalServerError, "internal", "erro interno")
	}
}

// detail strips the trailing sentinel from a wrapped chain so the client
// message carries only the operation's own text.
func detail(err, sentinel error) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return msg
	}
	return strings.TrimSuffix(msg, ": "+sentinel.Error())
}
