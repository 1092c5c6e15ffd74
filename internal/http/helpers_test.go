package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookcourier/internal/desk"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{desk.ErrNotFound, http.StatusUnauthorized},
		{desk.ErrNoSession, http.StatusUnauthorized},
		{fmt.Errorf("select x: %w", desk.ErrPrecondition), http.StatusConflict},
		{desk.ErrActionDisabled, http.StatusConflict},
		{desk.ErrInvalidRow, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", desk.ErrConnectivity), http.StatusServiceUnavailable},
		{desk.ErrCommitFailure, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, _ := errorStatus(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}
