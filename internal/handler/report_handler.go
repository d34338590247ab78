package handler

import (
	"net/http"

	"pos/internal/config"
	"pos/internal/middleware"
	"pos/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボードの集計API
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/dashboard")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/summary", h.summary)
	g.GET("/charts", h.charts)
}

func (h *ReportHandler) summary(c echo.Context) error {
	if _, ok := getCashierIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetSummary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) charts(c echo.Context) error {
	if _, ok := getCashierIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCharts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
