package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
	"github.com/therealharsh/backflow-tester-sub001/providers"
	"github.com/therealharsh/backflow-tester-sub001/search"
)

const suggestCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

// suggestHandler godoc
// @Summary            Autocomplete city/state/ZIP suggestions for a partial query
// @Tags               Search
// @Produce            json
// @Success            200 {object} []providers.Suggestion
// @Failure            500 {object} providers.ErrorResponse
// @Param              q query string false "partial query"
// @Router             /api/suggest [GET]
func Suggest(suggester *search.Suggester) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderCacheControl, suggestCacheControl)

		q := strings.TrimSpace(ctx.Query("q"))
		if q == "" {
			return ctx.JSON([]providers.Suggestion{})
		}

		suggestions, err := suggester.Suggest(ctx.Context(), q)
		if err != nil {
			log.Logger().Error("suggest failed", zap.String("q", q), zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(providers.ErrorResponse{Message: "something went wrong"})
		}

		return ctx.JSON(suggestions)
	}
}
