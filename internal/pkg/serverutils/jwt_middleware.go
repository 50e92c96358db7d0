package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity arrives as a JWT minted by the external auth collaborator. The
// middleware only unpacks claims into request locals; it never touches the
// user table.

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func parseIdentity(ctx *fiber.Ctx) (jwt.MapClaims, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, false
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

func setIdentityLocals(ctx *fiber.Ctx, claims jwt.MapClaims) {
	ctx.Locals("user_id", claimString(claims, "user_id"))
	ctx.Locals("username", claimString(claims, "username"))
	ctx.Locals("full_name", claimString(claims, "full_name"))
	ctx.Locals("avatar", claimString(claims, "avatar"))
}

// JwtMiddleware rejects anonymous requests. Used on every mutating route.
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, ok := parseIdentity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}
	setIdentityLocals(ctx, claims)
	return ctx.Next()
}

// OptionalJwtMiddleware leaves the request anonymous instead of failing.
// The notebook read endpoints and the new/try-it flows branch on identity.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	if claims, ok := parseIdentity(ctx); ok {
		setIdentityLocals(ctx, claims)
	}
	return ctx.Next()
}
