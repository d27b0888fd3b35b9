package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxInflatedBody caps decompressed request bodies.
const maxInflatedBody = 4 << 20

type inflatedBody struct {
	*gzip.Reader
	raw interface{ Close() error }
}

func (b inflatedBody) Close() error {
	_ = b.Reader.Close()
	return b.raw.Close()
}

// DecompressRequest transparently handles gzip encoded requests.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(c.GetHeader("Content-Encoding"))
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, inflatedBody{Reader: reader, raw: c.Request.Body}, maxInflatedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
