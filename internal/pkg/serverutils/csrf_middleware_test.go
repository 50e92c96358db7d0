package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestEnsureCSRFCookie_SetsTokenOnce(t *testing.T) {
	app := fiber.New()
	app.Get("/notebooks/:id", EnsureCSRFCookie(nil), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/notebooks/1", nil))
	assert.NoError(t, err)

	cookies := resp.Cookies()
	var token string
	for _, c := range cookies {
		if c.Name == "csrftoken" {
			token = c.Value
		}
	}
	assert.Len(t, token, 64)

	// A request that already carries the cookie is left alone
	req := httptest.NewRequest("GET", "/notebooks/1", nil)
	req.AddCookie(cookies[0])
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Empty(t, resp.Cookies())
}
