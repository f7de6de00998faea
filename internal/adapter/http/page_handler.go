package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/adapter/middleware"
	"loanchain-web/internal/adapter/view"
	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
	domsession "loanchain-web/internal/domain/session"
	"loanchain-web/internal/usecase/action"
	"loanchain-web/internal/usecase/connector"
	"loanchain-web/internal/usecase/dashboard"
	"loanchain-web/internal/usecase/session"
)

type PageHandler struct {
	sessions  *session.Usecase
	connector *connector.Connector
	actions   *action.Usecase
	dashboard *dashboard.Usecase
	notifier  *view.Notifier
	kv        domsession.KV
}

func NewPageHandler(
	s *session.Usecase,
	c *connector.Connector,
	a *action.Usecase,
	d *dashboard.Usecase,
	kv domsession.KV,
) *PageHandler {
	return &PageHandler{sessions: s, connector: c, actions: a, dashboard: d, notifier: view.NewNotifier(kv), kv: kv}
}

type dashboardData struct{ View *dashboard.View }

type borrowerData struct{ Stats *action.Stats }

type adminData struct {
	Allowed bool
	Stats   *action.Stats
}

type loansData struct{ Result *action.QueryResult }

// render wraps page data in the shared chrome. An explicit toast wins over
// the pending flash, which is then left for the next page.
func (h *PageHandler) render(c echo.Context, name, title string, data any, toast *notice.Toast, redirect *notice.Redirect) error {
	ctx := c.Request().Context()
	cid := middleware.GetClientID(c)

	rec, err := h.sessions.Current(ctx, cid)
	if err != nil {
		log.Printf("page %s: read session: %v", name, err)
	}
	if toast == nil {
		if toast, err = h.notifier.Take(ctx, cid); err != nil {
			log.Printf("page %s: take flash: %v", name, err)
		}
	}
	toggled, err := view.WalletToggled(ctx, h.kv, cid)
	if err != nil {
		log.Printf("page %s: wallet flag: %v", name, err)
	}

	w := view.Wallet{Toggled: toggled, ChainName: h.connector.Network().ChainName}
	if urls := h.connector.Network().ExplorerURLs; len(urls) > 0 {
		w.Explorer = urls[0]
	}
	if conn := middleware.GetConn(c); conn != nil {
		w.Connected = true
		w.Account = conn.Account.Hex()
		w.Short = loan.ShortenAddress(w.Account)
	}

	p := view.NewPage(title, c.Request().URL.Path, session.UI(rec), w, toast)
	p.Redirect = redirect
	p.Data = data
	return c.Render(http.StatusOK, name, p)
}

func (h *PageHandler) Landing(c echo.Context) error {
	return h.render(c, "landing", "Home", nil, nil, nil)
}

func (h *PageHandler) Login(c echo.Context) error {
	return h.render(c, "login", "Login", nil, nil, nil)
}

func (h *PageHandler) Register(c echo.Context) error {
	return h.render(c, "register", "Register", nil, nil, nil)
}

// Dashboard loads the aggregate on every visit; ?refresh=1 also reports the
// outcome as a toast.
func (h *PageHandler) Dashboard(c echo.Context) error {
	var (
		data  dashboardData
		toast *notice.Toast
	)
	s, err := h.dashboard.Refresh(c.Request().Context(), middleware.GetConn(c))
	if err == nil {
		v := h.dashboard.BuildView(s)
		data.View = &v
	} else if !errors.Is(err, dashboard.ErrNotConnected) {
		log.Printf("error loading dashboard data: %v", err)
	}
	if c.QueryParam("refresh") != "" || (err != nil && !errors.Is(err, dashboard.ErrNotConnected)) {
		t := dashboard.ToastFor(err)
		toast = &t
	}
	return h.render(c, "dashboard", "Dashboard", data, toast, nil)
}

func (h *PageHandler) Borrower(c echo.Context) error {
	if _, d := h.sessions.RequireAuth(c.Request().Context(), middleware.GetClientID(c)); d != nil {
		return c.Redirect(http.StatusFound, d.Redirect.To)
	}
	return h.render(c, "borrower", "Borrower", borrowerData{Stats: h.stats(c)}, nil, nil)
}

// Admin redirects anonymous visitors at once; a logged-in non-admin sees the
// page shell with an error toast and a delayed redirect.
func (h *PageHandler) Admin(c echo.Context) error {
	_, d := h.sessions.RequireAdmin(c.Request().Context(), middleware.GetClientID(c))
	if d != nil {
		if d.Toast == nil {
			return c.Redirect(http.StatusFound, d.Redirect.To)
		}
		return h.render(c, "admin", "Admin", adminData{}, d.Toast, &d.Redirect)
	}
	return h.render(c, "admin", "Admin", adminData{Allowed: true, Stats: h.stats(c)}, nil, nil)
}

func (h *PageHandler) Loans(c echo.Context) error {
	var (
		data  loansData
		toast *notice.Toast
	)
	if conn := middleware.GetConn(c); conn != nil {
		res, err := h.actions.AllLoans(c.Request().Context(), conn)
		if err != nil {
			toast = res.Toast
		}
		data.Result = res
	}
	return h.render(c, "loans", "Loans", data, toast, nil)
}

func (h *PageHandler) stats(c echo.Context) *action.Stats {
	conn := middleware.GetConn(c)
	if conn == nil {
		return nil
	}
	s, err := h.actions.Stats(c.Request().Context(), conn)
	if err != nil {
		log.Printf("error updating stats: %v", err)
		return nil
	}
	return s
}
