package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"horasextras/models"
)

func writeDomain(t *testing.T, err error) (int, APIError) {
	t.Helper()

	rec := httptest.NewRecorder()
	WriteDomainError(rec, err)

	var envelope ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return rec.Code, envelope.Error
}

func TestWriteDomainError_MessageIsDetailOnly(t *testing.T) {
	code, apiErr := writeDomain(t, errors.Wrap(models.ErrValidation, "obra é obrigatória"))
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "validation_error", apiErr.Code)
	// The sentinel suffix never leaks to the client.
	require.Equal(t, "obra é obrigatória", apiErr.Message)

	code, apiErr = writeDomain(t, errors.Wrapf(models.ErrIllegalTransition, "request %d already decided", 7))
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "request 7 already decided", apiErr.Message)
}

func TestWriteDomainError_BareSentinel(t *testing.T) {
	code, apiErr := writeDomain(t, models.ErrNotFound)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "not_found", apiErr.Code)
	require.Equal(t, models.ErrNotFound.Error(), apiErr.Message)
}

func TestWriteDomainError_StatusMapping(t *testing.T) {
	code, apiErr := writeDomain(t, errors.Wrap(models.ErrInvalidCredentials, "user lookup"))
	require.Equal(t, http.StatusUnauthorized, code)
	// Generic regardless of the wrapped detail.
	require.Equal(t, "email ou senha inválidos", apiErr.Message)

	code, apiErr = writeDomain(t, models.ErrForbidden)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "forbidden", apiErr.Code)

	code, apiErr = writeDomain(t, errors.New("driver broke"))
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "erro interno", apiErr.Message)
}
