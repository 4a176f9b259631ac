/*
Package req provides helper functions for HTTP request parsing and data binding.

The admin HTTP surface only ever accepts small JSON bodies (an announcement
broadcast to every connected client), so this package keeps just the JSON
binding half; see DESIGN.md for why the multipart form half was dropped.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"hzchat/internal/pkg/errs"
)

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
