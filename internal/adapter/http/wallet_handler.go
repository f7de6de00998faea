package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/adapter/middleware"
	"loanchain-web/internal/adapter/view"
	"loanchain-web/internal/domain/notice"
	domsession "loanchain-web/internal/domain/session"
	"loanchain-web/internal/usecase/action"
	"loanchain-web/internal/usecase/connector"
)

type WalletHandler struct {
	connector *connector.Connector
	actions   *action.Usecase
	notifier  *view.Notifier
	kv        domsession.KV
}

func NewWalletHandler(c *connector.Connector, a *action.Usecase, kv domsession.KV) *WalletHandler {
	return &WalletHandler{connector: c, actions: a, notifier: view.NewNotifier(kv), kv: kv}
}

type connectResp struct {
	Account string        `json:"account"`
	Admin   string        `json:"admin,omitempty"`
	Stats   *action.Stats `json:"stats,omitempty"`
	Reload  bool          `json:"reload"`
}

type toggleResp struct {
	Connected bool `json:"connected"`
	Reload    bool `json:"reload"`
}

// Connect binds the client to the wallet's first account on the target
// chain. The success toast is flashed for the reloaded page.
func (h *WalletHandler) Connect(c echo.Context) error {
	ctx := c.Request().Context()
	cid := middleware.GetClientID(c)

	conn, err := h.connector.Connect(ctx, cid)
	if errors.Is(err, connector.ErrNoProvider) {
		t := notice.Warning("Please install a wallet provider such as MetaMask.")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Toast: &t})
	}
	if err != nil {
		log.Printf("Wallet connection failed: %v", err)
		t := notice.Error("Connection failed: %s", err.Error())
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error(), Toast: &t})
	}
	middleware.SetConn(c, conn)

	resp := connectResp{Account: conn.Account.Hex(), Reload: true}
	if admin, err := conn.Contract.Admin(ctx); err != nil {
		log.Printf("read admin: %v", err)
	} else {
		resp.Admin = admin.Hex()
	}
	if resp.Stats, err = h.actions.Stats(ctx, conn); err != nil {
		log.Printf("error updating stats: %v", err)
	}
	if err := h.notifier.Show(ctx, cid, notice.Success("Wallet connected successfully!")); err != nil {
		log.Printf("flash: %v", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Toggle flips the header's wallet button.
func (h *WalletHandler) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	cid := middleware.GetClientID(c)

	on, t, err := view.ToggleWallet(ctx, h.kv, cid)
	if err != nil {
		log.Printf("toggle wallet: %v", err)
		te := notice.Error("%s", err.Error())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Toast: &te})
	}
	if err := h.notifier.Show(ctx, cid, t); err != nil {
		log.Printf("flash: %v", err)
	}
	return c.JSON(http.StatusOK, toggleResp{Connected: on, Reload: true})
}
