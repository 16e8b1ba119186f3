package httpx

import (
	"net/http"

	"bookcrud/internal/outcome"
)

// WriteOutcome renders o with the status code of its variant.
func WriteOutcome[T any](w http.ResponseWriter, r *http.Request, o outcome.Outcome[T]) {
	switch o.Kind() {
	case outcome.KindOk:
		v, _ := o.Value()
		JSON(w, http.StatusOK, v)
	case outcome.KindCreated:
		v, _ := o.Value()
		JSONCreated(w, o.Location(), v)
	case outcome.KindNoContent:
		NoContent(w)
	case outcome.KindNotFound:
		NotFound(w, r, "Resource not found")
	case outcome.KindBadRequest:
		BadRequest(w, r, "Request could not be applied", nil)
	default:
		InternalError(w, r)
	}
}
