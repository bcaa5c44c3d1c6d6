package restapi

import (
	"fmt"
	"net/http"

	"balance_assistant/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeBody decodes the request body into dst. Any decoding failure, including
// a field of the wrong JSON type, is reported as entity.ErrMalformedRequest.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", entity.ErrMalformedRequest)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: request body must be a JSON object with the documented fields", entity.ErrMalformedRequest)
	}
	return nil
}

func requiredField(name string) error {
	return fmt.Errorf("%w: %s is required and must be a string", entity.ErrMalformedRequest, name)
}
