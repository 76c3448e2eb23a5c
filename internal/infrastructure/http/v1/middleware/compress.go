package middleware

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

var gzipPool = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
		return w
	},
}

type gzipWriter struct {
	gin.ResponseWriter
	gz    *gzip.Writer
	wrote bool
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	w.wrote = true
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	w.wrote = true
	return w.gz.Write([]byte(s))
}

// Compress gzips JSON responses for clients that accept it. List endpoints
// proxy full collections from the remote store, so payloads compress well.
func Compress() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		// Binary downloads set their own headers.
		if strings.HasSuffix(c.Request.URL.Path, "/pdf") {
			c.Next()
			return
		}

		gz := gzipPool.Get().(*gzip.Writer)
		defer gzipPool.Put(gz)
		gz.Reset(c.Writer)

		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		gw := &gzipWriter{ResponseWriter: c.Writer, gz: gz}
		c.Writer = gw

		defer func() {
			if !gw.wrote {
				// Bodyless responses (204 deletes) must not carry an empty
				// gzip stream.
				gw.Header().Del("Content-Encoding")
				return
			}
			_ = gz.Close()
			c.Header("Content-Length", "")
		}()

		c.Next()
	}
}

var _ http.ResponseWriter = (*gzipWriter)(nil)
