package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ytget/playlist-demo/internal/logger"
)

// RateLimitMiddleware allows limit requests per client IP and window, counted in Redis.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
			}

			key := "rate:analyze:" + ip

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.WithContext(ctx).Error("Rate limiter unavailable", "error", err.Error())
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			// NX leaves a running window alone and repairs a key left without a TTL.
			if err := rdb.ExpireNX(ctx, key, window).Err(); err != nil {
				logger.WithContext(ctx).Error("Rate limiter expiry failed", "key", key, "error", err.Error())
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if count > int64(limit) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware answers preflight requests and sets the allow headers. With
// no origins configured any origin is allowed; otherwise a listed request
// Origin is echoed back.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Add("Vary", "Origin")
				if origin := r.Header.Get("Origin"); origin != "" {
					if _, ok := allowed[origin]; ok {
						w.Header().Set("Access-Control-Allow-Origin", origin)
					}
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-Id")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs every request through the structured logger.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.LogHTTPRequest(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		}()
		next.ServeHTTP(ww, r)
	})
}
