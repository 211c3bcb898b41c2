package hroute

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"runtime"

	"go.uber.org/zap"
)

// Recovery returns a middleware that recovers from any panics and writes a 500 if there was one.
func Recovery() Middleware {
	return func(next Handler) Handler {
		return func(c *Context) (err error) {
			defer func() {
				var rawReq []byte
				if rec := recover(); rec != nil {
					const size = 64 << 10
					buf := make([]byte, size)
					buf = buf[:runtime.Stack(buf, false)]
					req := c.request.req
					if req != nil {
						rawReq, _ = httputil.DumpRequest(req, false)
					}
					Log.Error("http call panic",
						zap.ByteString("rawReq", rawReq),
						zap.Any("error", rec),
						zap.ByteString("buf", buf))
					if !c.Written() {
						_ = c.Error(http.StatusInternalServerError, fmt.Sprint(rec))
					}
					err = nil
				}
			}()
			return next(c)
		}
	}
}
