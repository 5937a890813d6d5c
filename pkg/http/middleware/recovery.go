package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "VaderBoot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 and logs it with the stack and, when captured, the raw payload.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(perr),
						applogger.String("method", c.Request().Method),
						applogger.String("path", c.Path()),
						applogger.String("payload", string(RawPayload(c))),
						applogger.String("stack", string(debug.Stack())),
					)
					err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"status":  http.StatusInternalServerError,
						"message": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
