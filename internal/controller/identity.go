package controller

import (
	"iomd-notebook-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUser rebuilds the identity snapshot the JWT middleware left in the
// request locals. Requests without identity come back anonymous.
func currentUser(ctx *fiber.Ctx) *entity.User {
	idStr, ok := ctx.Locals("user_id").(string)
	if !ok || idStr == "" {
		return entity.AnonymousUser()
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return entity.AnonymousUser()
	}

	user := &entity.User{
		Id:            id,
		Authenticated: true,
	}
	if username, ok := ctx.Locals("username").(string); ok {
		user.Username = username
	}
	if fullName, ok := ctx.Locals("full_name").(string); ok {
		user.FullName = fullName
	}
	if avatar, ok := ctx.Locals("avatar").(string); ok && avatar != "" {
		user.AvatarURL = &avatar
	}
	return user
}
