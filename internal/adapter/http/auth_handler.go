package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/adapter/middleware"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/usecase/session"
)

type AuthHandler struct{ uc *session.Usecase }

func NewAuthHandler(uc *session.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

// authStatus keeps store failures on our side of the 5xx range.
func authStatus(err error) int {
	if st := statusFor(err); st != http.StatusBadGateway {
		return st
	}
	return http.StatusInternalServerError
}

func authFailure(c echo.Context, err error, t notice.Toast) error {
	st := authStatus(err)
	if st >= http.StatusInternalServerError {
		log.Printf("auth: %v", err)
	}
	return c.JSON(st, ErrorResponse{Error: err.Error(), Toast: &t})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err, notice.Error("Invalid username or password"))
	}
	out, err := h.uc.Login(c.Request().Context(), middleware.GetClientID(c), session.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return authFailure(c, err, session.ToastFor(err))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		fe := ToFieldErrors(err)
		return invalid(c, err, notice.Error("%s %s", fe[0].Field, fe[0].Message))
	}
	out, err := h.uc.Register(c.Request().Context(), session.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AgreeTerms:      req.Terms,
	})
	if err != nil {
		return authFailure(c, err, session.ToastFor(err))
	}
	return c.JSON(http.StatusCreated, out)
}

// Wallet logs in with the wallet's first account.
func (h *AuthHandler) Wallet(c echo.Context) error {
	out, err := h.uc.ConnectWithWallet(c.Request().Context(), middleware.GetClientID(c))
	if err != nil {
		return authFailure(c, err, session.WalletToastFor(err))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	out, err := h.uc.Logout(c.Request().Context(), middleware.GetClientID(c))
	if err != nil {
		return authFailure(c, err, session.ToastFor(err))
	}
	return c.JSON(http.StatusOK, out)
}
