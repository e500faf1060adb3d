package handler

import (
	"net/http"

	"swasthya-portal/internal/delivery/http/middleware"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/pkg/response"
)

// currentSession returns the authenticated session, answering 401 when the
// route was mounted without authentication.
func currentSession(w http.ResponseWriter, r *http.Request) (*entity.Session, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return nil, false
	}
	return session, true
}
