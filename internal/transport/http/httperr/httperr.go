package httperr

import (
	"errors"
	"net/http"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iorderrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iproductrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/iuserrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/currency"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/status"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/user"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/authsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/cartsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/catalogsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
)

// Status maps service errors onto HTTP status codes. Unknown errors are
// internal server errors.
func Status(err error) int {
	switch {
	case errors.Is(err, iorderrepo.ErrNotFound),
		errors.Is(err, iproductrepo.ErrNotFound),
		errors.Is(err, iuserrepo.ErrNotFound),
		errors.Is(err, cartsvc.ErrProductNotInCart):
		return http.StatusNotFound

	case errors.Is(err, authsvc.ErrInvalidCredentials),
		errors.Is(err, authsvc.ErrInvalidSession):
		return http.StatusUnauthorized

	case errors.Is(err, authsvc.ErrAccountInactive),
		errors.Is(err, ordersvc.ErrForbidden),
		errors.Is(err, catalogsvc.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, cartsvc.ErrRestaurantConflict),
		errors.Is(err, ordersvc.ErrOrderClosed),
		errors.Is(err, ordersvc.ErrInvalidTransition),
		errors.Is(err, authsvc.ErrEmailTaken):
		return http.StatusConflict

	case errors.Is(err, cartsvc.ErrEmptyCart),
		errors.Is(err, cartsvc.ErrInvalidQuantity),
		errors.Is(err, cartsvc.ErrProductUnavailable),
		errors.Is(err, ordersvc.ErrEmptyOrder),
		errors.Is(err, ordersvc.ErrInvalidQuantity),
		errors.Is(err, catalogsvc.ErrInvalidPrice),
		errors.Is(err, status.ErrInvalidStatus),
		errors.Is(err, currency.ErrInvalidCurrency),
		errors.Is(err, user.ErrInvalidRole):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// Write sends the error with its mapped status.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}
