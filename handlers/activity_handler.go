package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	config "github.com/atoile/micro_naija/configs"
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ServeActivityWs streams content events to an admin. Browsers cannot set headers
// on websocket requests, so the first frame must be {"type":"auth","token":"..."}.
func ServeActivityWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("Activity feed auth failed: invalid or missing auth message, error: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	userID, err := authorizeActivityToken(authMsg.Token, []byte(config.Config("JWT_SECRET")))
	if err != nil {
		log.Printf("Activity feed auth failed: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	// Writes belong to the hub once the client is registered.
	_ = c.WriteJSON(fiber.Map{"type": "ready"})
	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Default.Register(client)
	defer func() {
		websocket.Default.Unregister(client)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("Activity feed closed for %s", userID)
			} else {
				log.Printf("Activity feed read error for %s: %v", userID, err)
			}
			return
		}
	}
}

// authorizeActivityToken accepts staff tokens whose session is still active.
func authorizeActivityToken(tokenString string, secret []byte) (uuid.UUID, error) {
	claims, err := parseToken(tokenString, secret)
	if err != nil {
		return uuid.Nil, err
	}
	if role, _ := claims["role"].(string); role != "admin" && role != "editor" {
		return uuid.Nil, errors.New("staff role required")
	}
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user_id: %w", err)
	}

	sessionID, _ := claims["session_id"].(string)
	var session models.Session
	if err := database.DB.First(&session, "id = ? AND user_id = ?", sessionID, userID).Error; err != nil {
		return uuid.Nil, fmt.Errorf("session lookup: %w", err)
	}
	if !session.Active(time.Now()) {
		return uuid.Nil, errors.New("session expired or revoked")
	}
	return userID, nil
}

func parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
