package cache

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const responseTTL = 5 * time.Minute

// Store is the subset of the redis repository the middleware needs.
type Store interface {
	Get(key string) []byte
	SetKey(key string, value []byte, ttl time.Duration)
}

// New caches successful GET responses, keyed by a hash of the full
// request URI. Redirect responses are not cached so the resolver stays
// free to change canonical targets. The suggest endpoint is exempt: it
// carries its own CDN cache headers, which a body-only replay would
// drop.
func New(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/healthcheck" ||
			c.Path() == "/metrics" ||
			c.Path() == "/monitor" ||
			c.Path() == "/api/suggest" {
			return c.Next()
		}

		if c.Method() != http.MethodGet {
			return c.Next()
		}

		reqURI := c.OriginalURL()
		hashURL := uuid.NewSHA1(uuid.NameSpaceOID, []byte(reqURI)).String()

		cacheData := store.Get(hashURL)
		if len(cacheData) == 0 {
			if err := c.Next(); err != nil {
				return err
			}
			if c.Response().StatusCode() == fiber.StatusOK && len(c.Response().Body()) > 0 {
				store.SetKey(hashURL, c.Response().Body(), responseTTL)
			}
			return nil
		}

		c.Set("x-cached-response", "true")
		c.Response().SetBodyRaw(cacheData)
		c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		return nil
	}
}
