package middleware

import (
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-Id"

var requestSeq uint64

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			h := fnv.New64a()
			fmt.Fprintf(h, "%d:%d:%s", time.Now().UnixNano(), atomic.AddUint64(&requestSeq, 1), c.Request.RemoteAddr)
			rid = fmt.Sprintf("req_%x", h.Sum64())
		}
		c.Set(RequestIDHeader, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}
