package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atoile/micro_naija/database/dbtest"
	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	secret := []byte("test-secret")
	user := models.User{ID: uuid.New(), Role: "admin"}
	session := models.Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second)}

	signed, err := issueToken(user, session, secret)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)

	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, session.ID.String(), claims["session_id"])
	assert.EqualValues(t, session.ExpiresAt.Unix(), claims["exp"])
}

func TestAuthRequestValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginUser)
	app.Post("/verify-2fa", VerifyTwoFactor)

	cases := []struct {
		path string
		body string
	}{
		{"/login", `{"email":"not-an-email","password":"x"}`},
		{"/login", `{"email":"admin@example.org"}`},
		{"/verify-2fa", `{"otpId":"abc","otp":"123456"}`},
		{"/verify-2fa", `{"otpId":"` + uuid.NewString() + `","otp":"12ab56"}`},
		{"/verify-2fa", `{"otpId":"` + uuid.NewString() + `","otp":"1234"}`},
		{"/login", `{broken`},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("POST", tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, tc.body)
	}
}

func TestLogoutAndMeRequireAuthentication(t *testing.T) {
	app := fiber.New()
	app.Post("/logout", Logout)
	app.Get("/me", GetMe)

	resp, err := app.Test(httptest.NewRequest("POST", "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestParseToken(t *testing.T) {
	secret := []byte("test-secret")
	session := models.Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	signed, err := issueToken(models.User{ID: uuid.New(), Role: "editor"}, session, secret)
	require.NoError(t, err)

	claims, err := parseToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims["role"])

	_, err = parseToken(signed, []byte("other-secret"))
	assert.Error(t, err)

	expired, err := issueToken(models.User{ID: uuid.New()}, models.Session{ExpiresAt: time.Now().Add(-time.Minute)}, secret)
	require.NoError(t, err)
	_, err = parseToken(expired, secret)
	assert.Error(t, err)
}

func TestAuthorizeActivityTokenRejectsNonStaff(t *testing.T) {
	secret := []byte("test-secret")
	signed, err := issueToken(models.User{ID: uuid.New(), Role: "student"}, models.Session{ExpiresAt: time.Now().Add(time.Hour)}, secret)
	require.NoError(t, err)

	_, err = authorizeActivityToken(signed, secret)
	assert.EqualError(t, err, "staff role required")
}

func verifyApp() *fiber.App {
	app := fiber.New()
	app.Post("/verify-2fa", VerifyTwoFactor)
	return app
}

func verifyBody(id uuid.UUID, code string) string {
	return `{"otpId":"` + id.String() + `","otp":"` + code + `"}`
}

func TestLoginUserCreatesChallenge(t *testing.T) {
	db := dbtest.Use(t)
	user := createUser(t, db, "admin@example.org", "s3cret-pass", "admin")
	earlier := createChallenge(t, db, user, "111111", time.Now().Add(otpTTL))

	app := fiber.New()
	app.Post("/login", LoginUser)

	resp, err := app.Test(jsonRequest("POST", "/login", `{"email":"Admin@Example.org","password":"s3cret-pass"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	var challenge models.OTPChallenge
	require.NoError(t, db.First(&challenge, "id = ?", body["otpId"]).Error)
	assert.Equal(t, user.ID, challenge.UserID)
	assert.Nil(t, challenge.ConsumedAt)
	assert.WithinDuration(t, time.Now().Add(otpTTL), challenge.ExpiresAt, time.Minute)

	require.NoError(t, db.First(&earlier, "id = ?", earlier.ID).Error)
	assert.NotNil(t, earlier.ConsumedAt, "a new login closes older codes")

	resp, err = app.Test(jsonRequest("POST", "/login", `{"email":"admin@example.org","password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	require.NoError(t, db.Model(&user).Update("is_active", false).Error)
	resp, err = app.Test(jsonRequest("POST", "/login", `{"email":"admin@example.org","password":"s3cret-pass"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyTwoFactorOpensSessionOnce(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := dbtest.Use(t)
	user := createUser(t, db, "admin@example.org", "s3cret-pass", "admin")
	challenge := createChallenge(t, db, user, "123456", time.Now().Add(otpTTL))
	app := verifyApp()

	resp, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(challenge.ID, "123456")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	claims, err := parseToken(body["token"].(string), []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, body["sessionId"], claims["session_id"])
	assert.Equal(t, user.ID.String(), claims["user_id"])

	var session models.Session
	require.NoError(t, db.First(&session, "id = ?", body["sessionId"]).Error)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.Active(time.Now()))

	var stored models.OTPChallenge
	require.NoError(t, db.First(&stored, "id = ?", challenge.ID).Error)
	assert.NotNil(t, stored.ConsumedAt)
	assert.Equal(t, 1, stored.Attempts)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NotNil(t, reloaded.LastLoginAt)

	resp, err = app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(challenge.ID, "123456")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "a code is single use")
}

func TestVerifyTwoFactorAttemptLimit(t *testing.T) {
	db := dbtest.Use(t)
	user := createUser(t, db, "editor@example.org", "s3cret-pass", "editor")
	challenge := createChallenge(t, db, user, "123456", time.Now().Add(otpTTL))
	app := verifyApp()

	for left := otpMaxAttempts - 1; left >= 0; left-- {
		resp, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(challenge.ID, "654321")))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.EqualValues(t, left, decodeBody(t, resp)["attempts_left"])
	}

	// The right code no longer helps once the attempts are spent.
	resp, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(challenge.ID, "123456")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var stored models.OTPChallenge
	require.NoError(t, db.First(&stored, "id = ?", challenge.ID).Error)
	assert.Equal(t, otpMaxAttempts, stored.Attempts)

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
}

func TestVerifyTwoFactorRejectsExpiredAndUnknownCodes(t *testing.T) {
	db := dbtest.Use(t)
	user := createUser(t, db, "editor@example.org", "s3cret-pass", "editor")
	expired := createChallenge(t, db, user, "123456", time.Now().Add(-time.Second))
	app := verifyApp()

	resp, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(expired.ID, "123456")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var stored models.OTPChallenge
	require.NoError(t, db.First(&stored, "id = ?", expired.ID).Error)
	assert.Zero(t, stored.Attempts, "expired codes do not spend attempts")

	resp, err = app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(uuid.New(), "123456")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// verifyConcurrently submits code n times at once and returns the status codes.
func verifyConcurrently(t *testing.T, app *fiber.App, id uuid.UUID, code string, n int) map[int]int {
	t.Helper()

	// Build the route tree before the parallel requests.
	_, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(uuid.New(), code)))
	require.NoError(t, err)

	statuses := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := app.Test(jsonRequest("POST", "/verify-2fa", verifyBody(id, code)), -1)
			if err != nil {
				statuses <- 0
				return
			}
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for s := range statuses {
		counts[s]++
	}
	return counts
}

func TestVerifyTwoFactorConcurrentGuessesShareTheLimit(t *testing.T) {
	db := dbtest.Use(t)
	user := createUser(t, db, "admin@example.org", "s3cret-pass", "admin")
	challenge := createChallenge(t, db, user, "123456", time.Now().Add(otpTTL))

	counts := verifyConcurrently(t, verifyApp(), challenge.ID, "000000", 2*otpMaxAttempts)

	assert.Equal(t, map[int]int{
		fiber.StatusUnauthorized:    otpMaxAttempts,
		fiber.StatusTooManyRequests: otpMaxAttempts,
	}, counts)

	var stored models.OTPChallenge
	require.NoError(t, db.First(&stored, "id = ?", challenge.ID).Error)
	assert.Equal(t, otpMaxAttempts, stored.Attempts)
}

func TestVerifyTwoFactorConcurrentRedemptionOpensOneSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := dbtest.Use(t)
	user := createUser(t, db, "admin@example.org", "s3cret-pass", "admin")
	challenge := createChallenge(t, db, user, "123456", time.Now().Add(otpTTL))

	counts := verifyConcurrently(t, verifyApp(), challenge.ID, "123456", 4)

	assert.Equal(t, 1, counts[fiber.StatusOK])
	assert.Equal(t, 3, counts[fiber.StatusUnauthorized])

	var sessions int64
	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}
