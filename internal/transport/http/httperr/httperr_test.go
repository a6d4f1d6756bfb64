package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/authsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/cartsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: iorderrepo.ErrNotFound, want: http.StatusNotFound},
		{err: authsvc.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: authsvc.ErrAccountInactive, want: http.StatusForbidden},
		{err: ordersvc.ErrForbidden, want: http.StatusForbidden},
		{err: cartsvc.ErrRestaurantConflict, want: http.StatusConflict},
		{err: ordersvc.ErrOrderClosed, want: http.StatusConflict},
		{err: ordersvc.ErrInvalidTransition, want: http.StatusConflict},
		{err: cartsvc.ErrEmptyCart, want: http.StatusUnprocessableEntity},
		{err: ordersvc.ErrEmptyOrder, want: http.StatusUnprocessableEntity},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
		// Wrapped errors keep their mapping.
		{err: fmt.Errorf("context: %w", ordersvc.ErrInvalidTransition), want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}
