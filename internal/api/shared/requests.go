package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// One validator for the whole API; it caches struct metadata internally.
var validate = validator.New()

// DecodeJSON reads the request body as JSON into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest checks a decoded request payload. A payload with its
// own Validate method is trusted over the struct tags, which covers
// rules the tag syntax cannot express.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}

	return validate.Struct(v)
}
