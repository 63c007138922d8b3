package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia verificable por /health (pgxpool.Pool, redis.Client envuelto, etc.).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func Health(checks map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		out := fiber.Map{"status": "ok"}
		status := fiber.StatusOK
		for name, p := range checks {
			if p == nil {
				continue
			}
			if err := p.Ping(ctx); err != nil {
				out[name] = "down"
				out["status"] = "degraded"
				status = fiber.StatusServiceUnavailable
				continue
			}
			out[name] = "up"
		}
		return c.Status(status).JSON(out)
	}
}
