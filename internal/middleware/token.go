package middleware

import (
	"MeridianBackend/internal/entity"
	contextPkg "MeridianBackend/pkg/context"
	jwtPkg "MeridianBackend/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"error": "Invalid token claims",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	if claims["id"] == nil || claims["email"] == nil || claims["name"] == nil || claims["sid"] == nil {
		m.log.WithFields(logrus.Fields{
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	user := entity.UserLoginData{
		ID:        claims["id"].(string),
		Email:     claims["email"].(string),
		Name:      claims["name"].(string),
		SessionID: claims["sid"].(string),
	}

	// A valid signature is not enough: logout revokes the session, so the
	// session id baked into the token must still exist in the store.
	if _, err := m.sessions.GetSession(contextPkg.FromFiberCtx(ctx), user.SessionID); err != nil {
		m.log.WithFields(logrus.Fields{
			"session_id": user.SessionID,
			"error":      err.Error(),
		}).Warn("Session check failed")
		return unauthorized(ctx)
	}

	ctx.Locals("user", user)

	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
