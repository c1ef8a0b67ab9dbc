package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	usersdomain "github.com/pethaven/pethaven-api/internal/domains/users/domain"
)

const identityKey = "httpapi.identity"

// Identity is the authenticated caller extracted from the bearer token. The
// auth subsystem that issues tokens lives outside this service.
type Identity struct {
	UserID int64
	Email  string
	Role   usersdomain.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool { return i.Role == usersdomain.RoleAdmin }

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// authRequired validates the bearer token and stores the identity on the
// request context.
func authRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Error: "authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// adminRequired allows only admin callers. Must run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, envelope{Success: false, Error: "admin role required"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func identityFromToken(header string, secret []byte) (Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" || raw == header {
		return Identity{}, errors.New("missing bearer token")
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, errors.New("invalid token subject")
	}

	role := usersdomain.Role(claims.Role)
	if role != usersdomain.RoleAdmin {
		role = usersdomain.RoleUser
	}
	return Identity{UserID: userID, Email: claims.Email, Role: role}, nil
}
