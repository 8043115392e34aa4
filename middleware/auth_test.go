package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/services"
)

// stubAuthService accepts exactly one token string and returns fixed claims.
type stubAuthService struct {
	token  string
	claims *services.Claims
}

func (s *stubAuthService) MintCode(ctx context.Context, role models.AccessRole, teamID *int) (string, *models.AccessCode, error) {
	panic("not used")
}

func (s *stubAuthService) Redeem(ctx context.Context, code string) (string, *services.Claims, error) {
	panic("not used")
}

func (s *stubAuthService) ParseToken(tokenString string) (*services.Claims, error) {
	if tokenString == s.token {
		return s.claims, nil
	}
	return nil, services.ErrInvalidAccessCode
}

func protectedHandler(t *testing.T, wantRole models.AccessRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		require.NotNil(t, claims)
		assert.Equal(t, wantRole, claims.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	auth := &stubAuthService{
		token:  "good-token",
		claims: &services.Claims{Role: models.RoleAdmin},
	}
	handler := Authenticate(auth)(protectedHandler(t, models.RoleAdmin))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer token", "Bearer good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"bad token", "Bearer forged", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	playerTeam := 3
	auth := &stubAuthService{
		token:  "player-token",
		claims: &services.Claims{Role: models.RolePlayer, TeamID: &playerTeam},
	}

	adminOnly := Authenticate(auth)(RequireRole(models.RoleAdmin)(protectedHandler(t, models.RolePlayer)))
	eitherRole := Authenticate(auth)(RequireRole(models.RoleAdmin, models.RolePlayer)(protectedHandler(t, models.RolePlayer)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer player-token")

	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	eitherRole.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClaimsFromContextEmpty(t *testing.T) {
	assert.Nil(t, ClaimsFromContext(context.Background()))
}
