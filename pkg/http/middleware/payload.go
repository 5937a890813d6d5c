package middleware

import (
	"bytes"
	"io"

	"github.com/labstack/echo/v4"
)

const rawPayloadKey = "raw_payload"

// CapturePayload keeps a copy of the request body so failures can be logged with the exact input.
// It must run after the body limit middleware.
func CapturePayload() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					return err
				}
				_ = req.Body.Close()
				req.Body = io.NopCloser(bytes.NewReader(b))
				c.Set(rawPayloadKey, b)
			}
			return next(c)
		}
	}
}

// RawPayload returns the body captured by CapturePayload, or nil.
func RawPayload(c echo.Context) []byte {
	b, _ := c.Get(rawPayloadKey).([]byte)
	return b
}
