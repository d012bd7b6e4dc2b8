package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/therealharsh/backflow-tester-sub001/analytics"
	log "github.com/therealharsh/backflow-tester-sub001/pkg/logger"
	"github.com/therealharsh/backflow-tester-sub001/providers"
	"github.com/therealharsh/backflow-tester-sub001/search"
)

// searchHandler godoc
// @Summary            Resolve a location query to a canonical page or a ranked result set
// @Tags               Search
// @Produce            json
// @Success            200 {object} providers.SearchResponse
// @Success            302
// @Failure            500 {object} providers.ErrorResponse
// @Param              query query string false "free-text location (ZIP, city, state, address)"
// @Router             /search [GET]
func Search(engine *search.Engine, dispatcher *analytics.Dispatcher) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		query := strings.TrimSpace(ctx.Query("query"))
		if query == "" {
			// Missing query renders the empty search state, not an error.
			return ctx.JSON(providers.SearchResponse{Mode: providers.ModeText, Results: []providers.Provider{}})
		}

		out, err := engine.Search(ctx.Context(), query)
		if err != nil {
			log.Logger().Error("search pipeline failed", zap.String("query", query), zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(providers.ErrorResponse{Message: "something went wrong"})
		}

		event := analytics.SearchEvent{
			Query:    query,
			Kind:     string(out.Classification.Kind),
			Redirect: out.Redirect,
			Epoch:    time.Now().Unix(),
		}

		if out.Redirect != "" {
			dispatcher.Dispatch(event)
			return ctx.Redirect(out.Redirect, fiber.StatusFound)
		}

		event.Mode = string(out.Result.Mode)
		event.ResultCount = len(out.Result.Providers)
		dispatcher.Dispatch(event)

		return ctx.JSON(providers.SearchResponse{
			Count:   len(out.Result.Providers),
			Mode:    out.Result.Mode,
			Label:   out.Result.Label,
			Results: out.Result.Providers,
		})
	}
}
