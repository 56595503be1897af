package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/internal/domain/constants"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
	mockService "chime/internal/mocks/service"
)

func newAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/notifications/devices", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setupMock  func(verifier *mockService.MockTokenVerifier)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			header:     "Bearer   ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "rejected token",
			header: "Bearer expired",
			setupMock: func(verifier *mockService.MockTokenVerifier) {
				verifier.EXPECT().VerifyAccessToken("expired").Return(nil, errors.New("token is expired")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setupMock: func(verifier *mockService.MockTokenVerifier) {
				verifier.EXPECT().VerifyAccessToken("good").
					Return(&service.Claims{UserID: userID, Roles: entity.Roles{entity.RoleUser}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := mockService.NewMockTokenVerifier(t)
			if tt.setupMock != nil {
				tt.setupMock(verifier)
			}
			m := NewAuthMiddleware(verifier)
			c, rec := newAuthContext(tt.header)

			require.NoError(t, m.Authenticate(okHandler)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				got, ok := UserID(c)
				assert.True(t, ok)
				assert.Equal(t, userID, got)
			}
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m := NewAuthMiddleware(mockService.NewMockTokenVerifier(t))

	tests := []struct {
		name       string
		roles      any
		wantStatus int
	}{
		{name: "no roles stored", wantStatus: http.StatusForbidden},
		{name: "missing role", roles: entity.Roles{entity.RoleUser}, wantStatus: http.StatusForbidden},
		{name: "admin", roles: entity.Roles{entity.RoleUser, entity.RoleAdmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newAuthContext("")
			if tt.roles != nil {
				c.Set(constants.ContextKeyRoles, tt.roles)
			}

			require.NoError(t, m.RequireRole(entity.RoleAdmin)(okHandler)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUserID_RejectsNil(t *testing.T) {
	c, _ := newAuthContext("")

	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, uuid.Nil)
	_, ok = UserID(c)
	assert.False(t, ok)
}
