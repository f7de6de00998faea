package session

import (
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/domain/session"
)

type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterInput struct {
	FullName        string `json:"fullname"         form:"fullname"`
	Username        string `json:"username"         form:"username"`
	Email           string `json:"email"            form:"email"`
	Password        string `json:"password"         form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	AgreeTerms      bool   `json:"terms"            form:"terms"`
}

// Outcome is what an auth action hands back to the page: a toast and,
// on success, where to go next.
type Outcome struct {
	Toast    notice.Toast     `json:"toast"`
	Redirect *notice.Redirect `json:"redirect,omitempty"`
	User     *session.Record  `json:"user,omitempty"`
}

// Denial is returned by the page guards when access is refused.
type Denial struct {
	Toast    *notice.Toast
	Redirect notice.Redirect
}

// AuthUI is the logged-in badge and the role-dependent section visibility.
type AuthUI struct {
	LoggedIn  bool
	Badge     string
	ShowAdmin bool
	ShowUser  bool
}
