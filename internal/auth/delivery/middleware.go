package delivery

import (
	"log"
	"net/http"
	"strings"

	authdomain "todo-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

const subjectKey = "userEmail"

// TokenValidator resolves the subject of a bearer token.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and exposes the
// token subject to downstream handlers via SubjectFromContext.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := authenticate(validator, c.GetHeader("Authorization"))
		if err != nil {
			if authdomain.IsAuthError(err) {
				log.Printf("[Auth] Rejected %s %s: %v", c.Request.Method, c.FullPath(), err)
			} else {
				log.Printf("[Auth] Token validation failed on %s %s: %v", c.Request.Method, c.FullPath(), err)
			}
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFromContext returns the authenticated caller's email.
func SubjectFromContext(c *gin.Context) string {
	return c.GetString(subjectKey)
}

func authenticate(validator TokenValidator, authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", authdomain.ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", authdomain.ErrMalformedToken
	}

	return validator.ValidateToken(strings.TrimSpace(token))
}
