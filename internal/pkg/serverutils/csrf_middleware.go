package serverutils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	csrfCookieName = "csrftoken"
	csrfTokenTTL   = 24 * time.Hour
)

// EnsureCSRFCookie issues the host CSRF cookie on safe read endpoints so the
// editor can make authenticated API calls later. It is deliberately absent
// from the eval-frame route: the sandboxed frame must never see the host's
// CSRF secret. Issued tokens are tracked in Redis when available.
func EnsureCSRFCookie(rdb *redis.Client) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Cookies(csrfCookieName) == "" {
			buf := make([]byte, 32)
			if _, err := rand.Read(buf); err != nil {
				return err
			}
			token := hex.EncodeToString(buf)

			if rdb != nil {
				// Failure to record is non-fatal; the cookie still works
				// for double-submit verification.
				rdb.Set(ctx.Context(), "csrf:"+token, "1", csrfTokenTTL)
			}

			ctx.Cookie(&fiber.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Expires:  time.Now().Add(csrfTokenTTL),
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return ctx.Next()
	}
}
