package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	usersdomain "github.com/pethaven/pethaven-api/internal/domains/users/domain"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims tokenClaims, secret []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims(sub string) tokenClaims {
	return tokenClaims{
		Email: "maya@example.com",
		Role:  "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestIdentityFromToken(t *testing.T) {
	token := signToken(t, validClaims("42"), testSecret)

	identity, err := identityFromToken("Bearer "+token, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(42), identity.UserID)
	require.Equal(t, "maya@example.com", identity.Email)
	require.Equal(t, usersdomain.RoleUser, identity.Role)
}

func TestIdentityFromTokenRejectsBadInput(t *testing.T) {
	_, err := identityFromToken("", testSecret)
	require.Error(t, err)

	_, err = identityFromToken("not-a-bearer-header", testSecret)
	require.Error(t, err)

	// wrong secret
	token := signToken(t, validClaims("42"), []byte("other-secret"))
	_, err = identityFromToken("Bearer "+token, testSecret)
	require.Error(t, err)

	// expired
	expired := validClaims("42")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token = signToken(t, expired, testSecret)
	_, err = identityFromToken("Bearer "+token, testSecret)
	require.Error(t, err)

	// non-numeric subject
	token = signToken(t, validClaims("abc"), testSecret)
	_, err = identityFromToken("Bearer "+token, testSecret)
	require.Error(t, err)
}

func TestUnknownRoleDowngradesToUser(t *testing.T) {
	claims := validClaims("42")
	claims.Role = "SUPERUSER"
	token := signToken(t, claims, testSecret)

	identity, err := identityFromToken("Bearer "+token, testSecret)
	require.NoError(t, err)
	require.Equal(t, usersdomain.RoleUser, identity.Role)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", authRequired(testSecret), func(c *gin.Context) {
		identity, _ := identityFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID})
	})
	router.GET("/admin", authRequired(testSecret), adminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// no token
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	token := signToken(t, validClaims("42"), testSecret)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "42")

	// user role hitting an admin route
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// admin role
	adminClaims := validClaims("1")
	adminClaims.Role = "ADMIN"
	adminToken := signToken(t, adminClaims, testSecret)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
