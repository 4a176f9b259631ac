package handler

import (
	"net/http"

	"hzchat/internal/pkg/resp"
)

// HandleHealthz reports liveness for load balancers and operators.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "hzchat",
		})
	}
}
