// Package log exposes request-scoped structured logging for handlers.
// Entries go through zap; handlers never touch zap directly.
package log

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the process logger. When path is non-empty the JSON stream
// is duplicated to that file in addition to stdout.
func Init(path string) error {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		sinks = append(sinks, zapcore.AddSync(f))
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.NewMultiWriteSyncer(sinks...),
		zapcore.InfoLevel,
	)
	logger = zap.New(core)
	return nil
}

func fields(c *fiber.Ctx, extra map[string]any) []zap.Field {
	out := make([]zap.Field, 0, 6+len(extra))
	if c != nil {
		out = append(out,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			out = append(out, zap.String("req_id", rid))
		}
	}
	for k, v := range extra {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Info(c *fiber.Ctx, action string, extra map[string]any) {
	logger.Info(action, fields(c, extra)...)
}

// Audit marks state-changing account actions (login, logout, register).
func Audit(c *fiber.Ctx, action string, extra map[string]any) {
	logger.Info(action, append(fields(c, extra), zap.String("kind", "audit"))...)
}

// Security marks denied or suspicious requests.
func Security(c *fiber.Ctx, action string, extra map[string]any) {
	logger.Warn(action, fields(c, extra)...)
}

func Error(c *fiber.Ctx, action string, err error, extra map[string]any) {
	logger.Error(action, append(fields(c, extra), zap.Error(err))...)
}
