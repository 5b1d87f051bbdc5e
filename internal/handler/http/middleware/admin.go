package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/branch-salary-etl/internal/handler/http/response"
	"github.com/cmlabs-hris/branch-salary-etl/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly requires the admin role claim
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != jwt.RoleAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
