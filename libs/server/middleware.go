package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stardustagi/NovelServer/libs/logs"
	"go.uber.org/zap"
)

// RequestID 透传或生成 X-Request-ID
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

func Cors() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderXRequestID, "x-vercel-filename"},
		ExposeHeaders: []string{echo.HeaderXRequestID},
	})
}

// Request 请求日志
func Request(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			logger.Info("http request",
				logs.RequestID(GetRequestID(c)),
				logs.String("method", req.Method),
				logs.String("path", c.Path()),
				logs.String("remote", c.RealIP()),
				logs.Int("status", c.Response().Status),
				logs.Int64("bytes_out", c.Response().Size),
				logs.Duration("latency", time.Since(start)),
				logs.ErrorInfo(err),
			)
			return nil
		}
	}
}
