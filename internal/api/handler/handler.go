package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nkarpov/balda-go/internal/api/apierr"
)

const maxRequestBody = 1 << 20 // 1 MiB

// decodeJSON decodes a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("Invalid JSON request body")
	}
	return nil
}
