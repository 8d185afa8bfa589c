package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// signedInAs puts the claims a verified token for user would carry.
func signedInAs(user models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"user_id": user.ID.String(),
			"role":    user.Role,
		}})
		return c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		FullName: "Test " + role,
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createChallenge(t *testing.T, db *gorm.DB, user models.User, code string, expiresAt time.Time) models.OTPChallenge {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	require.NoError(t, err)
	challenge := models.OTPChallenge{UserID: user.ID, CodeHash: string(hash), ExpiresAt: expiresAt}
	require.NoError(t, db.Create(&challenge).Error)
	return challenge
}

func createSession(t *testing.T, db *gorm.DB, user models.User) models.Session {
	t.Helper()
	session := models.Session{UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
