package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	appMiddleware "github.com/ebralte/campground-api/backend/internal/middleware"
	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the resource handlers onto a fresh Echo instance
// backed by in-memory fakes, mirroring the production route setup.
func newTestServer() (*echo.Echo, *fakeCampsiteRepo, *fakeFavoriteRepo, *fakePromotionRepo, *fakeUserRepo) {
	e := echo.New()

	campsiteRepo := newFakeCampsiteRepo()
	favoriteRepo := newFakeFavoriteRepo()
	promotionRepo := newFakePromotionRepo()
	userRepo := newFakeUserRepo()

	NewCampsiteHandler(campsiteRepo, userRepo).RegisterCampsiteRoutes(e.Group("/campsites"))
	NewFavoriteHandler(favoriteRepo, campsiteRepo, userRepo).RegisterFavoriteRoutes(e.Group("/favorites"))
	NewPromotionHandler(promotionRepo).RegisterPromotionRoutes(e.Group("/promotions"))

	return e, campsiteRepo, favoriteRepo, promotionRepo, userRepo
}

// signTestToken produces a JWT the auth middleware accepts
func signTestToken(t *testing.T, userID uint, admin bool) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "user@example.com",
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(appMiddleware.JWTSecret()))
	require.NoError(t, err)
	return signed
}

// doRequest issues a request against the test server. A non-nil body is
// JSON-encoded; an empty token leaves the request anonymous.
func doRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
}
