package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// defaultBusyTTL bounds how long a crashed handler can keep an action locked.
const defaultBusyTTL = 120 * time.Second

// BusyLock rejects a second submission of the same action from the same
// client while the first is still running. Other actions are not blocked.
// key = method + route + client id
func BusyLock(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	if ttl <= 0 {
		ttl = defaultBusyTTL
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			cid := GetClientID(c)
			if cid == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing client id"})
			}

			key := buildKey(req.Method, c.Path(), cid)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			ok, err := acquire(ctx, rdb, key, ttl)
			cancel()
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "busy lock store unavailable"})
			}
			if !ok {
				return c.JSON(http.StatusConflict, map[string]string{"error": "action already in progress"})
			}
			defer func() { _ = release(context.Background(), rdb, key) }()
			return next(c)
		}
	}
}
