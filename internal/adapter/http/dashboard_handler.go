package http

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/adapter/middleware"
	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/usecase/dashboard"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

type dashboardResp struct {
	Summary   dashboard.Summary `json:"summary"`
	TotalLent string            `json:"totalLent"`
	View      dashboard.View    `json:"view"`
	Toast     notice.Toast      `json:"toast"`
}

type helpResp struct {
	Toast notice.Toast `json:"toast"`
	HTML  bool         `json:"html"`
}

func failedRefresh(c echo.Context, err error) error {
	log.Printf("error refreshing dashboard: %v", err)
	t := dashboard.ToastFor(err)
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error(), Toast: &t})
}

func (h *DashboardHandler) Data(c echo.Context) error {
	s, err := h.uc.Refresh(c.Request().Context(), middleware.GetConn(c))
	if err != nil {
		return failedRefresh(c, err)
	}
	return c.JSON(http.StatusOK, dashboardResp{
		Summary:   s,
		TotalLent: loan.FormatTokens(s.TotalLent),
		View:      h.uc.BuildView(s),
		Toast:     dashboard.ToastFor(nil),
	})
}

// Export downloads the summary as a JSON attachment.
func (h *DashboardHandler) Export(c echo.Context) error {
	s, err := h.uc.Refresh(c.Request().Context(), middleware.GetConn(c))
	if err != nil {
		return failedRefresh(c, err)
	}
	b, err := dashboard.Export(s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", dashboard.ExportFilename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, b)
}

func (h *DashboardHandler) Help(c echo.Context) error {
	return c.JSON(http.StatusOK, helpResp{Toast: notice.Info(dashboard.Help), HTML: true})
}
