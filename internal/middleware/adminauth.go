package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredential holds the admin shared secret, resolved once at boot from
// the environment and the credential database, and passed to the
// authorization middleware explicitly.
type AdminCredential struct {
	key          string
	passwordHash []byte
	jwtSecret    []byte
}

func NewAdminCredential(key, passwordHash, jwtSecret string) *AdminCredential {
	secret := jwtSecret
	if secret == "" {
		secret = key
	}
	return &AdminCredential{
		key:          key,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(secret),
	}
}

// Matches accepts the configured key or the stored admin password.
func (c *AdminCredential) Matches(key string) bool {
	if key == "" {
		return false
	}
	if c.key != "" && key == c.key {
		return true
	}
	if len(c.passwordHash) > 0 &&
		bcrypt.CompareHashAndPassword(c.passwordHash, []byte(key)) == nil {
		return true
	}
	return false
}

// IssueToken returns a signed session token so the dashboard does not need to
// attach the raw key to every request.
func (c *AdminCredential) IssueToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(c.jwtSecret)
}

func (c *AdminCredential) VerifyToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	isAdmin, _ := claims["admin"].(bool)
	return isAdmin
}

// AdminOnly rejects requests that carry neither a valid shared key (header,
// query parameter or JSON body field) nor a valid session token.
func AdminOnly(cred *AdminCredential) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				if token, found := strings.CutPrefix(authHeader, "Bearer "); found && cred.VerifyToken(token) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key := r.Header.Get("X-ADMIN-KEY")
			if key == "" {
				key = r.URL.Query().Get("admin_key")
			}
			if key == "" {
				key = adminKeyFromBody(r)
			}

			if !cred.Matches(key) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// adminKeyFromBody peeks at a JSON body for the key and restores the body so
// the handler can decode it again.
func adminKeyFromBody(r *http.Request) string {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		AdminKey  string `json:"admin_key"`
		AdminKey2 string `json:"adminKey"`
		Admin     string `json:"admin"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.AdminKey != "":
		return payload.AdminKey
	case payload.AdminKey2 != "":
		return payload.AdminKey2
	default:
		return payload.Admin
	}
}
