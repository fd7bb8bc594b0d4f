package http

import (
	"errors"
	"net/http"

	"hdb-financing/internal/domain/financing"
)

// errorStatus maps usecase errors onto HTTP codes. Only input errors echo
// their message back to the caller.
func errorStatus(err error) (int, ErrorResponse) {
	switch {
	case financing.IsInputError(err):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, financing.ErrRunNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found"}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}
