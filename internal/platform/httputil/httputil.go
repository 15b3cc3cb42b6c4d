// Package httputil holds the JSON helpers shared by all HTTP handlers:
// response writing, the error envelope, and request decoding.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "petconnect/pkg/domain-errors"
)

// errorResponse is the wire envelope for failures.
type errorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError translates a domain error into the JSON error envelope. Internal
// errors keep their detail out of the response body.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			resp.ErrorDescription = de.Message
			resp.Fields = de.Fields
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// Decode parses the JSON request body into T.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, dErrors.New(dErrors.CodeInvalidInput, "invalid request body")
	}
	return v, nil
}
