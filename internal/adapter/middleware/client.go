package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/usecase/connector"
	"loanchain-web/pkg/id"
)

const (
	// ClientCookie names the browser; it scopes that browser's local storage.
	ClientCookie = "lc_client"

	clientIDKey = "client_id"
	connKey     = "conn"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientID reads the client cookie or issues a fresh id.
func ClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cid := ""
			if ck, err := c.Cookie(ClientCookie); err == nil && id.Valid(ck.Value) {
				cid = ck.Value
			}
			if cid == "" {
				cid = id.NewClientID()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    cid,
					Path:     "/",
					MaxAge:   clientCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(clientIDKey, cid)
			return next(c)
		}
	}
}

// Restorer is satisfied by *connector.Connector.
type Restorer interface {
	Restore(ctx context.Context, clientID string) (*connector.Conn, error)
}

// Connection restores the client's wallet connection for this request.
// A failed restore leaves the request disconnected.
func Connection(r Restorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			conn, err := r.Restore(c.Request().Context(), GetClientID(c))
			if err != nil {
				log.Printf("restore connection for %s: %v", GetClientID(c), err)
			}
			if conn != nil {
				c.Set(connKey, conn)
			}
			return next(c)
		}
	}
}

func GetClientID(c echo.Context) string {
	v, _ := c.Get(clientIDKey).(string)
	return v
}

// GetConn returns the restored connection, or nil when disconnected.
func GetConn(c echo.Context) *connector.Conn {
	v, _ := c.Get(connKey).(*connector.Conn)
	return v
}

// SetConn replaces the request's connection, e.g. right after connecting.
func SetConn(c echo.Context, conn *connector.Conn) { c.Set(connKey, conn) }
