package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"suburbia-skate.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// lockDuration covers the longest expected mint (retries included)
	lockDuration = 2 * time.Minute
	// retentionDuration is how long completed responses are replayable
	retentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

// cachedResponse is the stored form of a completed response, so a replay
// carries the original status code, not a flat 200.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware dedupes retried requests that carry an
// Idempotency-Key header. A request still in flight gets 409; a
// completed request gets the original response body replayed.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
				})
				return
			}

			var cached cachedResponse
			if err := json.Unmarshal([]byte(val), &cached); err != nil || cached.Status == 0 {
				cached = cachedResponse{Status: http.StatusOK, Body: val}
			}
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(cached.Status, cached.Body)
			c.Abort()
			return
		}

		locked, err := redisSetNX(ctx, storageKey, processingMarker, lockDuration)
		if err != nil {
			// Redis unavailable: serve the request rather than block mints.
			c.Next()
			return
		}
		if !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
			if err == nil {
				_ = redisSet(ctx, storageKey, string(payload), retentionDuration)
			}
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}
