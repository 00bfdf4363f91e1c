package main

import (
    "compress/gzip"
    "io"
    "net/http"
    "strings"
    "sync"

    "go.uber.org/zap"
)

func withCORS(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses responses when the client accepts gzip. HEAD and
// range requests pass through untouched, as do statuses without a body.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodHead || r.Header.Get("Range") != "" ||
            !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gw := &gzipResponseWriter{ResponseWriter: w}
        defer func() {
            if gw.gz == nil {
                return
            }
            _ = gw.gz.Close()
            gw.gz.Reset(io.Discard)
            gzPool.Put(gw.gz)
        }()
        gw.newWriter = func() *gzip.Writer {
            gz := gzPool.Get().(*gzip.Writer)
            gz.Reset(w)
            return gz
        }
        w.Header().Add("Vary", "Accept-Encoding")
        next.ServeHTTP(gw, r)
    })
}

// gzipResponseWriter picks compression once the status is known.
type gzipResponseWriter struct {
    http.ResponseWriter
    newWriter   func() *gzip.Writer
    gz          *gzip.Writer
    wroteHeader bool
}

func (g *gzipResponseWriter) WriteHeader(code int) {
    if g.wroteHeader {
        return
    }
    g.wroteHeader = true
    if bodyAllowed(code) {
        h := g.ResponseWriter.Header()
        h.Set("Content-Encoding", "gzip")
        // Both describe the uncompressed body.
        h.Del("Content-Length")
        h.Del("Accept-Ranges")
        g.gz = g.newWriter()
    }
    g.ResponseWriter.WriteHeader(code)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
    if !g.wroteHeader {
        g.WriteHeader(http.StatusOK)
    }
    if g.gz == nil {
        return g.ResponseWriter.Write(b)
    }
    return g.gz.Write(b)
}

func bodyAllowed(code int) bool {
    return code >= 200 && code != http.StatusNoContent && code != http.StatusNotModified
}

// readOnly rejects anything but GET and HEAD.
func readOnly(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet && r.Method != http.MethodHead {
            w.Header().Set("Allow", "GET, HEAD")
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// noStoreData keeps browsers from caching data.json between refreshes.
func noStoreData(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if strings.HasSuffix(r.URL.Path, ".json") {
            w.Header().Set("Cache-Control", "no-store")
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(logger *zap.Logger, next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                logger.Error("Handler panic", zap.Any("panic", rec), zap.String("path", r.URL.Path))
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
