package handler

import (
	"net/http"
	"strings"

	"hzchat/internal/pkg/auth/jwt"
	"hzchat/internal/pkg/errs"
	"hzchat/internal/pkg/resp"
)

// requireAdminToken gates every request behind a valid "Bearer <token>"
// Authorization header signed with secret. An empty secret disables the
// check entirely, which is only appropriate for local development.
func requireAdminToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}

			if _, err := jwt.ParseAdminToken(token, secret); err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
