package view

import (
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/usecase/session"
)

// Wallet is the header's view of the connection.
type Wallet struct {
	// Connected is the live connection from the connector.
	Connected bool
	Account   string
	Short     string
	// Toggled is the header button's own flag; it is not reconciled with
	// Connected.
	Toggled   bool
	ChainName string
	Explorer  string
}

// Page is the data every template receives. Data carries the page-specific
// view model.
type Page struct {
	Title       string
	Path        string
	Nav         []NavLink
	Footer      []FooterColumn
	Auth        session.AuthUI
	Toast       *notice.Toast
	AutoDismiss bool
	Redirect    *notice.Redirect
	Wallet      Wallet
	Data        any
}

// NewPage fills in the chrome shared by every page.
func NewPage(title, path string, auth session.AuthUI, w Wallet, toast *notice.Toast) Page {
	p := Page{
		Title:  title,
		Path:   path,
		Nav:    Nav(path),
		Footer: Footer(),
		Auth:   auth,
		Toast:  toast,
		Wallet: w,
	}
	if toast != nil {
		p.AutoDismiss = AutoDismiss(*toast, path)
	}
	return p
}
