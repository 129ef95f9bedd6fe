package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "credkit/pkg/domain-errors"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "validation message is shown to the caller",
			err:        dErrors.New(dErrors.CodeValidation, "Please enter a valid email address."),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]string{
				"error":             "validation_error",
				"error_description": "Please enter a valid email address.",
			},
		},
		{
			name:       "duplicate names the offending field",
			err:        dErrors.NewField(dErrors.CodeConflict, "phone", "A client with this phone number already exists."),
			wantStatus: http.StatusConflict,
			wantBody: map[string]string{
				"error":             "conflict",
				"error_description": "A client with this phone number already exists.",
				"field":             "phone",
			},
		},
		{
			name:       "wrapped storage failure hides its cause",
			err:        fmt.Errorf("add client: %w", dErrors.Wrap(errors.New("disk full"), dErrors.CodeInternal, "persist roster")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "internal_error"},
		},
		{
			name:       "plain error is treated as internal",
			err:        http.ErrAbortHandler,
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "internal_error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decodeBody(t, w))
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeValidation:         http.StatusBadRequest,
		dErrors.CodeBadRequest:         http.StatusBadRequest,
		dErrors.CodeInvalidInput:       http.StatusBadRequest,
		dErrors.CodeInvariantViolation: http.StatusBadRequest,
		dErrors.CodeConflict:           http.StatusConflict,
		dErrors.CodeNotFound:           http.StatusNotFound,
		dErrors.CodeUnavailable:        http.StatusServiceUnavailable,
		dErrors.CodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"id": "client-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]string{"id": "client-1"}, decodeBody(t, w))
}
