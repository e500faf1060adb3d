package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"swasthya-portal/config"
	"swasthya-portal/internal/delivery/http/middleware"
	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/repository"
	"swasthya-portal/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	jwt      *jwt.JWTService
	sessions domainRepo.SessionRepository
	auth     *middleware.AuthMiddleware
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test", AccessExpiry: time.Hour, RefreshExpiry: time.Hour})
	sessions := repository.NewSessionRepository(client)
	return &fixture{
		jwt:      jwtService,
		sessions: sessions,
		auth:     middleware.NewAuthMiddleware(jwtService, sessions, log),
	}
}

// login stores a session for user and returns its access token and token id
func (f *fixture) login(t *testing.T, user entity.User) (string, string) {
	t.Helper()
	token, tokenID, err := f.jwt.GenerateAccessToken(user.ID, string(user.Role))
	require.NoError(t, err)
	require.NoError(t, f.sessions.Save(context.Background(), &entity.Session{User: user, TokenID: tokenID}, time.Hour))
	return token, tokenID
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	session, found := middleware.GetSessionFromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(session.UserID()))
})

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	h := f.auth.Authenticate(ok)

	require.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(h, "garbage").Code)

	token, tokenID := f.login(t, entity.User{ID: "P001", Role: entity.RolePatient})
	rec := serve(h, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "P001", rec.Body.String())

	require.NoError(t, f.sessions.Delete(context.Background(), "P001", tokenID))
	rec = serve(h, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Session expired")
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	f := newFixture(t)
	refresh, _, err := f.jwt.GenerateRefreshToken("P001", "patient")
	require.NoError(t, err)

	require.Equal(t, http.StatusUnauthorized, serve(f.auth.Authenticate(ok), refresh).Code)
}

func TestRequireRole_ForcesLogout(t *testing.T) {
	f := newFixture(t)
	h := f.auth.Authenticate(f.auth.RequireAdmin(ok))

	token, tokenID := f.login(t, entity.User{ID: "D001", Role: entity.RoleDoctor})
	require.Equal(t, http.StatusForbidden, serve(h, token).Code)

	session, err := f.sessions.Find(context.Background(), "D001", tokenID)
	require.NoError(t, err)
	require.Nil(t, session)

	adminToken, _ := f.login(t, entity.User{ID: "A001", Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, serve(h, adminToken).Code)
}

func TestRequireRole_WithoutSession(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusUnauthorized, serve(f.auth.RequirePharmacist(ok), "").Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.NewCORSMiddleware().Handle(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
