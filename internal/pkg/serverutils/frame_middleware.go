package serverutils

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// EvalFramePath is the one route that is meant to be embedded cross-origin.
const EvalFramePath = "/eval-frame/"

// FrameOptionsMiddleware denies framing everywhere except the eval-frame
// route, which instead pins frame-ancestors to the hosting origin. The
// exemption is intentionally this narrow.
func FrameOptionsMiddleware(siteURL string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if strings.TrimSuffix(ctx.Path(), "/")+"/" == EvalFramePath {
			ctx.Set(fiber.HeaderContentSecurityPolicy, "frame-ancestors "+siteURL)
		} else {
			ctx.Set(fiber.HeaderXFrameOptions, "DENY")
		}
		return err
	}
}

// EvalFrameOriginMiddleware is installed only when the eval frame is served
// from its own origin. Requests arriving on the eval-frame host may reach
// nothing but the eval-frame route, keeping the sandbox origin free of any
// endpoint that carries session or CSRF state.
func EvalFrameOriginMiddleware(evalFrameOrigin string) fiber.Handler {
	evalFrameHost := ""
	if u, err := url.Parse(evalFrameOrigin); err == nil {
		evalFrameHost = u.Host
	}

	return func(ctx *fiber.Ctx) error {
		if evalFrameHost != "" && string(ctx.Request().Host()) == evalFrameHost {
			if strings.TrimSuffix(ctx.Path(), "/")+"/" != EvalFramePath {
				return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: "not found"})
			}
		}
		return ctx.Next()
	}
}
