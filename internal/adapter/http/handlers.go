package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/usecase/connector"
)

type Handler struct{ connector *connector.Connector }

func NewHandler(c *connector.Connector) *Handler { return &Handler{connector: c} }

func (h *Handler) Health(c echo.Context) error {
	n := h.connector.Network()
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"time":     time.Now().UTC().Format(time.RFC3339Nano),
		"chainId":  n.ChainID,
		"chain":    n.ChainName,
		"contract": h.connector.ContractAddress().Hex(),
		"wallet":   h.connector.HasProvider(),
	})
}
