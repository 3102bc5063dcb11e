package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/pkg/logger"
)

// AccessLog registra cada petición con zerolog: método, ruta, estado y duración.
// Los 5xx salen en nivel error; los 4xx en warn.
func AccessLog(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
