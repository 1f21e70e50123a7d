package serverutils

import (
	"time"

	"github.com/af-Athameem/gtruth/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionLocal is the ctx.Locals key the middleware stores the live session
// under.
const SessionLocal = "session"

// SessionMiddleware verifies the bearer token, loads the session it names,
// enforces the inactivity timeout and slides the activity window. An expired
// session is destroyed, forcing a fresh login.
func SessionMiddleware(secret string, sessions *memory.SessionRepository, timeout time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return Fail(ctx, fiber.StatusUnauthorized, "Missing token")
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return Fail(ctx, fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return Fail(ctx, fiber.StatusUnauthorized, "Invalid claims")
		}
		sessionID, _ := claims["session_id"].(string)

		session, found := sessions.Get(sessionID)
		if !found {
			return Fail(ctx, fiber.StatusUnauthorized, "Session expired. Please log in again.")
		}

		now := time.Now()
		if session.Expired(now, timeout) {
			sessions.Delete(sessionID)
			return Fail(ctx, fiber.StatusUnauthorized, "Your session has expired due to inactivity. Please log in again.")
		}
		session.Touch(now)
		sessions.Save(session)

		ctx.Locals(SessionLocal, session)
		return ctx.Next()
	}
}
