package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/leadflow-backend/pkg/auth"
	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
	"github.com/angelmondragon/leadflow-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "leadflow", ExpirationMinutes: 60}

type stubUserLoader struct {
	users map[uuid.UUID]*models.User
}

func (s stubUserLoader) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole) string {
	t.Helper()
	token, _, err := auth.NewSigner(testJWT, nil).Mint(userID, role)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, stubUserLoader{}, testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsNonBearerScheme(t *testing.T) {
	handler := Auth(testJWT, stubUserLoader{}, testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, stubUserLoader{}, testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	userID := uuid.New()
	issued := time.Now().Add(-2 * time.Hour)
	token, _, err := auth.NewSigner(testJWT, func() time.Time { return issued }).Mint(userID, enums.UserRoleAgent)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	users := stubUserLoader{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Role: enums.UserRoleAgent, Status: enums.UserStatusActive},
	}}
	handler := Auth(testJWT, users, testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthForbidsUnknownOrInactiveUser(t *testing.T) {
	inactiveID := uuid.New()
	users := stubUserLoader{users: map[uuid.UUID]*models.User{
		inactiveID: {ID: inactiveID, Role: enums.UserRoleAgent, Status: enums.UserStatusInactive},
	}}
	handler := Auth(testJWT, users, testLogger())(okHandler())

	for name, id := range map[string]uuid.UUID{"unknown": uuid.New(), "inactive": inactiveID} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+mintTestToken(t, id, enums.UserRoleAgent))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403 got %d", name, resp.Code)
		}
	}
}

func TestAuthAttachesIdentity(t *testing.T) {
	userID := uuid.New()
	users := stubUserLoader{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Name: "Ana", Email: "ana@example.com", Role: enums.UserRoleAdmin, Status: enums.UserStatusActive},
	}}

	var captured Identity
	var capturedRole string
	handler := Auth(testJWT, users, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
		capturedRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// role comes from the users table, not the token
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID, enums.UserRoleAgent))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.ID != userID || captured.Email != "ana@example.com" || captured.Name != "Ana" {
		t.Fatalf("unexpected identity %+v", captured)
	}
	if !captured.IsAdmin() || capturedRole != string(enums.UserRoleAdmin) {
		t.Fatalf("expected admin role, got %s", capturedRole)
	}
}

func TestRequireAnyRole(t *testing.T) {
	guard := RequireAnyRole(testLogger(), enums.UserRoleAdmin, enums.UserRoleAgent)
	adminOnly := RequireRole(enums.UserRoleAdmin, testLogger())

	cases := []struct {
		name    string
		role    enums.UserRole
		handler http.Handler
		want    int
	}{
		{"agent on shared route", enums.UserRoleAgent, guard(okHandler()), http.StatusOK},
		{"agent on admin route", enums.UserRoleAgent, adminOnly(okHandler()), http.StatusForbidden},
		{"admin on admin route", enums.UserRoleAdmin, adminOnly(okHandler()), http.StatusOK},
		{"no identity", "", guard(okHandler()), http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.role != "" {
			req = req.WithContext(WithIdentity(req.Context(), Identity{ID: uuid.New(), Role: tc.role}))
		}
		resp := httptest.NewRecorder()
		tc.handler.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s: expected %d got %d", tc.name, tc.want, resp.Code)
		}
	}
}
