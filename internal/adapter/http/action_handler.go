package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/adapter/middleware"
	"loanchain-web/internal/usecase/action"
)

type ActionHandler struct{ uc *action.Usecase }

func NewActionHandler(uc *action.Usecase) *ActionHandler { return &ActionHandler{uc: uc} }

func (h *ActionHandler) RequestLoan(c echo.Context) error { return h.submit(c, action.KindRequest) }
func (h *ActionHandler) RepayLoan(c echo.Context) error   { return h.submit(c, action.KindRepay) }
func (h *ActionHandler) Fund(c echo.Context) error        { return h.submit(c, action.KindFund) }
func (h *ActionHandler) Withdraw(c echo.Context) error    { return h.submit(c, action.KindWithdraw) }
func (h *ActionHandler) ApproveLoan(c echo.Context) error { return h.submit(c, action.KindApprove) }

// submit binds the single form field and hands it to the usecase. A
// disconnected client is answered before the input is looked at.
func (h *ActionHandler) submit(c echo.Context, kind action.Kind) error {
	conn := middleware.GetConn(c)
	input := ""
	if conn != nil {
		var err error
		if input, err = h.bind(c, kind); err != nil {
			return invalid(c, err, action.InvalidToast(kind))
		}
	}
	res, err := h.uc.Submit(c.Request().Context(), conn, action.Tx{Kind: kind, Input: input})
	return c.JSON(statusFor(err), res)
}

func (h *ActionHandler) bind(c echo.Context, kind action.Kind) (string, error) {
	if kind == action.KindApprove {
		var req loanIDReq
		if err := c.Bind(&req); err != nil {
			return "", err
		}
		return req.LoanID, c.Validate(&req)
	}
	var req amountReq
	if err := c.Bind(&req); err != nil {
		return "", err
	}
	return req.Amount, c.Validate(&req)
}

func (h *ActionHandler) LoanStatus(c echo.Context) error {
	res, err := h.uc.CheckLoanStatus(c.Request().Context(), middleware.GetConn(c))
	return c.JSON(statusFor(err), res)
}

func (h *ActionHandler) ExistingLoan(c echo.Context) error {
	res, err := h.uc.CheckExistingLoan(c.Request().Context(), middleware.GetConn(c))
	return c.JSON(statusFor(err), res)
}

func (h *ActionHandler) GetLoan(c echo.Context) error {
	res, err := h.uc.LoanByID(c.Request().Context(), middleware.GetConn(c), c.Param("loan_id"))
	return c.JSON(statusFor(err), res)
}

func (h *ActionHandler) AllLoans(c echo.Context) error {
	res, err := h.uc.AllLoans(c.Request().Context(), middleware.GetConn(c))
	return c.JSON(statusFor(err), res)
}

func (h *ActionHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context(), middleware.GetConn(c))
	if err != nil {
		log.Printf("error updating stats: %v", err)
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}
