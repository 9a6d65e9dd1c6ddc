package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ne-taxonomy/pkg/logger"
)

// RequestLogger registra método, ruta, estado y latencia de cada petición.
// Los 5xx se registran en nivel error con su causa (el error devuelto o el
// guardado por writeError); el resto en info.
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
		if status >= fiber.StatusInternalServerError {
			cause := err
			if cause == nil {
				cause, _ = c.Locals(LocalError).(error)
			}
			ev = log.Error().Err(cause)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("account_id", GetAccountID(c)).
			Msg("petición HTTP")
		return err
	}
}
