package middleware

import (
	"net/http"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/pkg/response"
)

// RequireRole allows only sessions with one of roles. Any other role is
// logged out before the 403.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Session not found")
				return
			}

			if !session.HasRole(roles...) {
				if err := m.sessionRepo.Delete(r.Context(), session.UserID(), session.TokenID); err != nil {
					m.log.Warnf("Failed to revoke session of %s: %+v", session.UserID(), err)
				}
				m.log.Infof("Forced logout of %s: role %s not allowed on %s", session.UserID(), session.Role(), r.URL.Path)
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleAdmin)(next)
}

func (m *AuthMiddleware) RequireDoctor(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleDoctor)(next)
}

func (m *AuthMiddleware) RequirePatient(next http.Handler) http.Handler {
	return m.RequireRole(entity.RolePatient)(next)
}

func (m *AuthMiddleware) RequirePharmacist(next http.Handler) http.Handler {
	return m.RequireRole(entity.RolePharmacist)(next)
}
