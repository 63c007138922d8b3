package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/pkg/logger"
)

// RequestLogger registra una línea por request con método, ruta, status, latencia, request id y empresa.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error().Err(err)
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("company_id", GetCompanyID(c)).
			Msg("http request")
		return err
	}
}
