package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	config "github.com/atoile/micro_naija/configs"
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/notifications"
	"github.com/atoile/micro_naija/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

const (
	otpLength      = 6
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
	sessionTTL     = 24 * time.Hour
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyTwoFactorRequest struct {
	OTPID string `json:"otpId" validate:"required,uuid"`
	OTP   string `json:"otp" validate:"required,numeric,len=6"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID.String(), FullName: u.FullName, Email: u.Email, Role: u.Role}
}

// LoginUser checks the password and mails a one-time code. The token is only
// issued by VerifyTwoFactor.
func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is disabled"})
	}

	code, err := utils.GenerateOTP(otpLength)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate login code"})
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate login code"})
	}

	now := time.Now()
	challenge := models.OTPChallenge{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		ExpiresAt: now.Add(otpTTL),
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	if err := tx.Model(&models.OTPChallenge{}).
		Where("user_id = ? AND consumed_at IS NULL", user.ID).
		Update("consumed_at", now).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if err := tx.Create(&challenge).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create login challenge"})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction commit failed"})
	}

	go notifications.SendLoginCode(user.FullName, user.Email, code, otpTTL)

	return c.JSON(fiber.Map{
		"otpId":      challenge.ID.String(),
		"expires_at": challenge.ExpiresAt,
		"message":    "A login code has been sent to your email address.",
	})
}

var (
	errCodeClosed      = errors.New("login code is consumed or expired")
	errTooManyAttempts = errors.New("login code attempts exhausted")
)

// VerifyTwoFactor spends one attempt on the challenge and, when the code
// matches, consumes it and opens a session. Both steps are conditional
// updates, so concurrent submissions cannot exceed otpMaxAttempts or redeem
// the same code twice.
func VerifyTwoFactor(c *fiber.Ctx) error {
	var req VerifyTwoFactorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	var (
		challenge models.OTPChallenge
		session   models.Session
		wrongCode bool
	)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.OTPChallenge{}).
			Where("id = ? AND consumed_at IS NULL AND attempts < ? AND expires_at > ?", req.OTPID, otpMaxAttempts, now).
			UpdateColumn("attempts", gorm.Expr("attempts + 1"))
		if claim.Error != nil {
			return claim.Error
		}
		if err := tx.Preload("User").First(&challenge, "id = ?", req.OTPID).Error; err != nil {
			return err
		}
		if claim.RowsAffected == 0 {
			if challenge.ConsumedAt == nil && now.Before(challenge.ExpiresAt) {
				return errTooManyAttempts
			}
			return errCodeClosed
		}

		if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(req.OTP)) != nil {
			// The spent attempt must be committed.
			wrongCode = true
			return nil
		}

		consume := tx.Model(&models.OTPChallenge{}).
			Where("id = ? AND consumed_at IS NULL", challenge.ID).
			UpdateColumn("consumed_at", now)
		if consume.Error != nil {
			return consume.Error
		}
		if consume.RowsAffected != 1 {
			return errCodeClosed
		}

		session = models.Session{
			UserID:    challenge.UserID,
			ExpiresAt: now.Add(sessionTTL),
			UserAgent: truncate(c.Get(fiber.HeaderUserAgent), 255),
			IP:        c.IP(),
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", challenge.UserID).Update("last_login_at", now).Error
	})
	switch {
	case errors.Is(err, errTooManyAttempts):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts, please log in again"})
	case errors.Is(err, errCodeClosed), errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired code"})
	case err != nil:
		log.Printf("Failed to verify login code: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	case wrongCode:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":         "Invalid or expired code",
			"attempts_left": otpMaxAttempts - challenge.Attempts,
		})
	}

	t, err := issueToken(challenge.User, session, []byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	log.Printf("Admin %s signed in", challenge.User.Email)
	return c.JSON(fiber.Map{
		"token":     t,
		"sessionId": session.ID.String(),
		"user":      newUserResponse(challenge.User),
	})
}

func issueToken(user models.User, session models.Session, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"role":       user.Role,
		"session_id": session.ID.String(),
		"exp":        session.ExpiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func Logout(c *fiber.Ctx) error {
	session, ok := c.Locals("session").(*models.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No active session"})
	}

	now := time.Now()
	if err := database.DB.Model(session).Update("revoked_at", now).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to end session"})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func GetMe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return dbError(c, err, "User")
	}
	return c.JSON(newUserResponse(user))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
