package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging logs every handled update with its duration.
// Message text stays out of the logs: passwords arrive as plain messages.
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Duration("took", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if callback := c.Callback(); callback != nil {
				fields = append(fields, zap.String("callback_unique", callback.Unique))
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("Update failed", fields...)
				return err
			}

			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}
