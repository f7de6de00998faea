package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health    *Handler
	Pages     *PageHandler
	Auth      *AuthHandler
	Wallet    *WalletHandler
	Actions   *ActionHandler
	Dashboard *DashboardHandler
}

// Mount registers every route. busy wraps the endpoints that drive a
// submit button.
func Mount(e *echo.Echo, h Handlers, busy echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	// pages
	for _, p := range []string{"/", "/index", "/landing"} {
		e.GET(p, h.Pages.Landing)
	}
	e.GET("/login", h.Pages.Login)
	e.GET("/register", h.Pages.Register)
	e.GET("/dashboard", h.Pages.Dashboard)
	e.GET("/borrower", h.Pages.Borrower)
	e.GET("/admin", h.Pages.Admin)
	e.GET("/loans", func(c echo.Context) error {
		if wantsJSON(c) {
			return h.Actions.AllLoans(c)
		}
		return h.Pages.Loans(c)
	})

	// auth
	auth := e.Group("/auth", busy)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/wallet", h.Auth.Wallet)
	auth.POST("/logout", h.Auth.Logout)

	// wallet
	e.POST("/wallet/connect", h.Wallet.Connect, busy)
	e.POST("/chrome/wallet", h.Wallet.Toggle)

	// contract writes
	e.POST("/loans/request", h.Actions.RequestLoan, busy)
	e.POST("/loans/repay", h.Actions.RepayLoan, busy)
	e.POST("/loans/approve", h.Actions.ApproveLoan, busy)
	e.POST("/contract/fund", h.Actions.Fund, busy)
	e.POST("/contract/withdraw", h.Actions.Withdraw, busy)

	// queries
	e.GET("/loans/all", h.Actions.AllLoans)
	e.GET("/loans/status", h.Actions.LoanStatus)
	e.GET("/loans/existing", h.Actions.ExistingLoan)
	e.GET("/loans/:loan_id", h.Actions.GetLoan)
	e.GET("/stats", h.Actions.Stats)

	// dashboard
	e.GET("/dashboard/data", h.Dashboard.Data)
	e.GET("/dashboard/export", h.Dashboard.Export)
	e.GET("/dashboard/help", h.Dashboard.Help)
}
