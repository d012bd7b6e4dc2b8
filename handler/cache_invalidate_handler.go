package handler

import "github.com/gofiber/fiber/v2"

type CachePruner interface {
	Prune() error
}

// InvalidateCache godoc
// @Summary            Flush the cached GET responses
// @Tags               Cache
// @Produce            json
// @Success            200
// @Router             /caches/prune [GET]
func InvalidateCache(cache CachePruner) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := cache.Prune(); err != nil {
			ctx.Status(fiber.StatusInternalServerError)
			return ctx.SendString(err.Error())
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
